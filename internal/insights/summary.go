// Package insights aggregates spending for the dashboard: monthly
// totals split by the user's merchant classifications.
package insights

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/domain"
	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/recurring"
)

// MonthlySummary is one calendar month of spending. Amounts the user
// has not classified land in Unclassified.
type MonthlySummary struct {
	Month        string          `json:"month"` // "2026-01"
	Total        decimal.Decimal `json:"total"`
	Essential    decimal.Decimal `json:"essential"`
	Subscription decimal.Decimal `json:"subscription"`
	Unclassified decimal.Decimal `json:"unclassified"`
}

// Summarize buckets transactions by calendar month and splits each
// month by merchant classification. classes is keyed by normalized
// merchant key, as stored by the classification repository. Output is
// sorted by month ascending.
func Summarize(txs []domain.Transaction, classes map[string]domain.MerchantClass) []MonthlySummary {
	byMonth := make(map[string]*MonthlySummary)
	for _, tx := range txs {
		month := fmt.Sprintf("%04d-%02d", tx.Date.Year, int(tx.Date.Month))
		s := byMonth[month]
		if s == nil {
			s = &MonthlySummary{
				Month:        month,
				Total:        decimal.Zero,
				Essential:    decimal.Zero,
				Subscription: decimal.Zero,
				Unclassified: decimal.Zero,
			}
			byMonth[month] = s
		}

		s.Total = s.Total.Add(tx.Amount)
		switch classes[recurring.MerchantKey(tx.Merchant)] {
		case domain.ClassEssential:
			s.Essential = s.Essential.Add(tx.Amount)
		case domain.ClassSubscription:
			s.Subscription = s.Subscription.Add(tx.Amount)
		default:
			s.Unclassified = s.Unclassified.Add(tx.Amount)
		}
	}

	out := make([]MonthlySummary, 0, len(byMonth))
	for _, s := range byMonth {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
