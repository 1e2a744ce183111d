package recurring

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/domain"
)

// Config holds the detection thresholds. Zero values are not usable;
// start from DefaultConfig and override as needed.
type Config struct {
	// MinOccurrences is the minimum number of matched transactions for
	// a merchant before a series can exist. Must be >= 2.
	MinOccurrences int

	// Gap ranges, in days, for cadence classification. The monthly
	// range is checked first: a median gap sitting on a boundary shared
	// by both ranges classifies as monthly.
	MonthlyMinDays int
	MonthlyMaxDays int
	WeeklyMinDays  int
	WeeklyMaxDays  int

	// AmountTolerancePercent is the relative tolerance (0..1) applied
	// to the group mean. AmountToleranceAbsolute is the floor; the
	// effective tolerance is whichever is larger.
	AmountTolerancePercent  decimal.Decimal
	AmountToleranceAbsolute decimal.Decimal
}

// DefaultConfig returns the thresholds used by the product: at least
// three charges, monthly gaps of 27-33 days, weekly gaps of 6-8 days,
// and amounts within 15% of the mean or $2.00, whichever is larger.
func DefaultConfig() Config {
	return Config{
		MinOccurrences:          3,
		MonthlyMinDays:          27,
		MonthlyMaxDays:          33,
		WeeklyMinDays:           6,
		WeeklyMaxDays:           8,
		AmountTolerancePercent:  decimal.NewFromFloat(0.15),
		AmountToleranceAbsolute: decimal.NewFromInt(2),
	}
}

// Detect partitions transactions into merchant groups and classifies
// each group as recurring or not, returning one RecurringSeries per
// qualifying merchant sorted by merchant key.
//
// Detect is pure and deterministic: it performs no I/O, does not
// mutate its input, and its output does not depend on input order.
func Detect(txs []domain.Transaction, cfg Config) []domain.RecurringSeries {
	groups := make(map[string][]domain.Transaction)
	for _, tx := range txs {
		key := MerchantKey(tx.Merchant)
		if key == "" {
			continue
		}
		groups[key] = append(groups[key], tx)
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var series []domain.RecurringSeries
	for _, key := range keys {
		if s, ok := classifyGroup(groups[key], cfg); ok {
			series = append(series, s)
		}
	}
	return series
}

// classifyGroup applies the cadence and amount-tolerance rules to one
// merchant group. ok is false when the group is rejected.
func classifyGroup(group []domain.Transaction, cfg Config) (domain.RecurringSeries, bool) {
	if len(group) < cfg.MinOccurrences {
		return domain.RecurringSeries{}, false
	}

	sorted := make([]domain.Transaction, len(group))
	copy(sorted, group)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].ID < sorted[j].ID
	})

	gaps := make([]int, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, sorted[i].Date.DaysSince(sorted[i-1].Date))
	}
	gap := medianDays(gaps)

	var cadence domain.Cadence
	switch {
	case gap >= cfg.MonthlyMinDays && gap <= cfg.MonthlyMaxDays:
		cadence = domain.CadenceMonthly
	case gap >= cfg.WeeklyMinDays && gap <= cfg.WeeklyMaxDays:
		cadence = domain.CadenceWeekly
	default:
		// no stable periodicity
		return domain.RecurringSeries{}, false
	}

	sum := decimal.Zero
	for _, tx := range sorted {
		sum = sum.Add(tx.Amount)
	}
	mean := sum.Div(decimal.NewFromInt(int64(len(sorted))))

	tolerance := decimal.Max(mean.Abs().Mul(cfg.AmountTolerancePercent), cfg.AmountToleranceAbsolute)
	for _, tx := range sorted {
		if tx.Amount.Sub(mean).Abs().GreaterThan(tolerance) {
			// one outlier rejects the whole group; no partial-subset
			// recovery is attempted
			return domain.RecurringSeries{}, false
		}
	}

	last := sorted[len(sorted)-1].Date
	return domain.RecurringSeries{
		Merchant:            displayName(sorted),
		AverageAmount:       mean.Round(2),
		Cadence:             cadence,
		Occurrences:         len(sorted),
		LastTransactionDate: last,
		NextDueEstimate:     last.AddDays(gap),
	}, true
}

// medianDays returns the median of gaps in whole days. For an even
// count the two middle values are averaged and rounded half away from
// zero. gaps must be non-empty.
func medianDays(gaps []int) int {
	sorted := make([]int, len(gaps))
	copy(sorted, gaps)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	sum := sorted[mid-1] + sorted[mid]
	if sum%2 != 0 {
		return sum/2 + 1
	}
	return sum / 2
}

// displayName picks the canonical spelling for a group: the most
// frequent trimmed label, ties broken by earliest transaction date.
// sorted must already be in date order.
func displayName(sorted []domain.Transaction) string {
	counts := make(map[string]int, len(sorted))
	firstSeen := make(map[string]int, len(sorted))
	for i, tx := range sorted {
		label := strings.TrimSpace(tx.Merchant)
		counts[label]++
		if _, ok := firstSeen[label]; !ok {
			firstSeen[label] = i
		}
	}

	best := strings.TrimSpace(sorted[0].Merchant)
	for label, n := range counts {
		if n > counts[best] || (n == counts[best] && firstSeen[label] < firstSeen[best]) {
			best = label
		}
	}
	return best
}
