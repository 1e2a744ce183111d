package bank

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/domain"
)

// demoCharge describes one synthetic recurring or one-off merchant in
// the seeded dataset.
type demoCharge struct {
	merchant string
	amount   string
	everyDay int // 0 means a single charge
}

// The dataset mirrors a plausible household: a few clean subscriptions
// the detector should find, plus one-off noise it should ignore.
var demoCharges = []demoCharge{
	{merchant: "Netflix", amount: "15.99", everyDay: 30},
	{merchant: "Spotify USA", amount: "9.99", everyDay: 30},
	{merchant: "Planet Fitness", amount: "24.99", everyDay: 30},
	{merchant: "Sunrise Apartments", amount: "1450.00", everyDay: 30},
	{merchant: "Blue Apron", amount: "59.94", everyDay: 7},
	{merchant: "Delta Airlines", amount: "420.00"},
	{merchant: "Corner Hardware", amount: "37.12"},
}

// DemoSource serves a deterministic seeded dataset, used when a user
// has no linked bank data yet. Charges are anchored to the end of the
// requested range so detection always has fresh-looking history.
type DemoSource struct{}

// NewDemoSource creates the seeded demo transaction source.
func NewDemoSource() *DemoSource {
	return &DemoSource{}
}

// FetchTransactions implements TransactionSource. Output depends only
// on the requested range, never on the clock.
func (s *DemoSource) FetchTransactions(ctx context.Context, userID string, start, end civil.Date) ([]domain.Transaction, error) {
	if end.Before(start) {
		return nil, nil
	}

	var txs []domain.Transaction
	for _, c := range demoCharges {
		amount := decimal.RequireFromString(c.amount)

		if c.everyDay == 0 {
			// single charge, placed mid-range
			d := start.AddDays(end.DaysSince(start) / 2)
			txs = append(txs, domain.Transaction{
				ID:       fmt.Sprintf("demo-%s-0", merchantSlug(c.merchant)),
				Merchant: c.merchant,
				Amount:   amount,
				Date:     d,
			})
			continue
		}

		// anchor the latest charge so the next due estimate lands five
		// days past the range end, keeping demo reminders actionable
		for i, d := 0, end.AddDays(5-c.everyDay); !d.Before(start); i, d = i+1, d.AddDays(-c.everyDay) {
			txs = append(txs, domain.Transaction{
				ID:       fmt.Sprintf("demo-%s-%d", merchantSlug(c.merchant), i),
				Merchant: c.merchant,
				Amount:   amount,
				Date:     d,
			})
		}
	}
	return txs, nil
}

func merchantSlug(name string) string {
	slug := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			slug = append(slug, r)
		case r >= 'A' && r <= 'Z':
			slug = append(slug, r+'a'-'A')
		case r == ' ':
			slug = append(slug, '-')
		}
	}
	return string(slug)
}

var _ TransactionSource = (*DemoSource)(nil)
