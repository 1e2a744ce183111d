package recurring

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/domain"
)

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func tx(id, merchant, amount string, d civil.Date) domain.Transaction {
	return domain.Transaction{
		ID:       id,
		Merchant: merchant,
		Amount:   decimal.RequireFromString(amount),
		Date:     d,
	}
}

// Four monthly Netflix charges spaced 28-31 days apart over four
// months must produce exactly one monthly series.
func TestDetect_MonthlySubscription(t *testing.T) {
	txs := []domain.Transaction{
		tx("t1", "Netflix", "15.99", date(2026, time.January, 5)),
		tx("t2", "Netflix", "15.99", date(2026, time.February, 2)),  // gap 28
		tx("t3", "Netflix", "15.99", date(2026, time.March, 5)),     // gap 31
		tx("t4", "Netflix", "15.99", date(2026, time.April, 3)),     // gap 29
	}

	series := Detect(txs, DefaultConfig())
	if len(series) != 1 {
		t.Fatalf("Detect returned %d series, want 1", len(series))
	}

	s := series[0]
	if s.Merchant != "Netflix" {
		t.Errorf("Merchant = %q, want %q", s.Merchant, "Netflix")
	}
	if s.Cadence != domain.CadenceMonthly {
		t.Errorf("Cadence = %q, want monthly", s.Cadence)
	}
	if s.Occurrences != 4 {
		t.Errorf("Occurrences = %d, want 4", s.Occurrences)
	}
	if !s.AverageAmount.Equal(decimal.RequireFromString("15.99")) {
		t.Errorf("AverageAmount = %s, want 15.99", s.AverageAmount)
	}
	if s.LastTransactionDate != date(2026, time.April, 3) {
		t.Errorf("LastTransactionDate = %v", s.LastTransactionDate)
	}
	// median gap of {28, 31, 29} is 29
	if want := date(2026, time.May, 2); s.NextDueEstimate != want {
		t.Errorf("NextDueEstimate = %v, want %v", s.NextDueEstimate, want)
	}
}

func TestDetect_WeeklyCadence(t *testing.T) {
	txs := []domain.Transaction{
		tx("t1", "Blue Apron", "59.94", date(2026, time.March, 2)),
		tx("t2", "Blue Apron", "59.94", date(2026, time.March, 9)),
		tx("t3", "Blue Apron", "59.94", date(2026, time.March, 16)),
		tx("t4", "Blue Apron", "59.94", date(2026, time.March, 23)),
	}

	series := Detect(txs, DefaultConfig())
	if len(series) != 1 {
		t.Fatalf("Detect returned %d series, want 1", len(series))
	}
	if series[0].Cadence != domain.CadenceWeekly {
		t.Errorf("Cadence = %q, want weekly", series[0].Cadence)
	}
	if want := date(2026, time.March, 30); series[0].NextDueEstimate != want {
		t.Errorf("NextDueEstimate = %v, want %v", series[0].NextDueEstimate, want)
	}
}

// One charge outside tolerance rejects the merchant's whole group;
// the implementation does not attempt partial-subset recovery.
func TestDetect_WholeGroupRejectionOnAmountOutlier(t *testing.T) {
	txs := []domain.Transaction{
		tx("t1", "Gym", "40.00", date(2026, time.January, 1)),
		tx("t2", "Gym", "40.00", date(2026, time.January, 31)),
		tx("t3", "Gym", "40.00", date(2026, time.March, 2)),
		tx("t4", "Gym", "140.00", date(2026, time.April, 1)), // annual fee, out of tolerance
	}

	series := Detect(txs, DefaultConfig())
	if len(series) != 0 {
		t.Fatalf("Detect returned %d series, want 0 (whole-group rejection)", len(series))
	}
}

// A single charge with no repeats stays below MinOccurrences.
func TestDetect_SingleChargeNoSeries(t *testing.T) {
	txs := []domain.Transaction{
		tx("t1", "Delta Airlines", "420.00", date(2026, time.February, 14)),
	}

	if series := Detect(txs, DefaultConfig()); len(series) != 0 {
		t.Fatalf("Detect returned %d series, want 0", len(series))
	}
}

// Spelling, case, and whitespace variants of the same merchant must
// collapse into one series.
func TestDetect_MerchantNormalizationGroups(t *testing.T) {
	txs := []domain.Transaction{
		tx("t1", "Netflix", "15.99", date(2026, time.January, 5)),
		tx("t2", "NETFLIX", "15.99", date(2026, time.February, 4)),
		tx("t3", "  netflix  ", "15.99", date(2026, time.March, 6)),
		tx("t4", "NETFLIX.COM", "15.99", date(2026, time.April, 5)),
	}

	series := Detect(txs, DefaultConfig())
	if len(series) != 1 {
		t.Fatalf("Detect returned %d series, want 1", len(series))
	}
	if series[0].Occurrences != 4 {
		t.Errorf("Occurrences = %d, want 4", series[0].Occurrences)
	}
	// ties on spelling frequency resolve to the earliest observed label
	if series[0].Merchant != "Netflix" {
		t.Errorf("Merchant = %q, want %q", series[0].Merchant, "Netflix")
	}
}

func TestDetect_EmptyMerchantExcluded(t *testing.T) {
	txs := []domain.Transaction{
		tx("t1", "", "9.99", date(2026, time.January, 1)),
		tx("t2", "", "9.99", date(2026, time.January, 31)),
		tx("t3", "", "9.99", date(2026, time.March, 2)),
		tx("t4", "  ", "9.99", date(2026, time.April, 1)),
	}

	if series := Detect(txs, DefaultConfig()); len(series) != 0 {
		t.Fatalf("Detect returned %d series, want 0 for unlabeled charges", len(series))
	}
}

func TestDetect_NoStablePeriodicityRejected(t *testing.T) {
	// 12-14 day gaps fall in neither the weekly nor the monthly range.
	txs := []domain.Transaction{
		tx("t1", "Corner Store", "20.00", date(2026, time.January, 1)),
		tx("t2", "Corner Store", "20.00", date(2026, time.January, 13)),
		tx("t3", "Corner Store", "20.00", date(2026, time.January, 27)),
		tx("t4", "Corner Store", "20.00", date(2026, time.February, 9)),
	}

	if series := Detect(txs, DefaultConfig()); len(series) != 0 {
		t.Fatalf("Detect returned %d series, want 0 for unstable gaps", len(series))
	}
}

// When the weekly and monthly ranges share a boundary, the monthly
// range wins: MonthlyMinDays is an inclusive lower bound checked first.
func TestDetect_CadenceBoundaryTieGoesMonthly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WeeklyMinDays = 6
	cfg.WeeklyMaxDays = 10
	cfg.MonthlyMinDays = 10
	cfg.MonthlyMaxDays = 33

	txs := []domain.Transaction{
		tx("t1", "Ten Day Club", "5.00", date(2026, time.January, 1)),
		tx("t2", "Ten Day Club", "5.00", date(2026, time.January, 11)),
		tx("t3", "Ten Day Club", "5.00", date(2026, time.January, 21)),
	}

	series := Detect(txs, cfg)
	if len(series) != 1 {
		t.Fatalf("Detect returned %d series, want 1", len(series))
	}
	if series[0].Cadence != domain.CadenceMonthly {
		t.Errorf("Cadence = %q, want monthly on shared boundary", series[0].Cadence)
	}
}

// Running the detector twice on the same input yields identical
// output, and input order does not affect the result.
func TestDetect_DeterministicAndOrderIndependent(t *testing.T) {
	txs := []domain.Transaction{
		tx("t1", "Netflix", "15.99", date(2026, time.January, 5)),
		tx("t2", "Netflix", "15.99", date(2026, time.February, 2)),
		tx("t3", "Netflix", "15.99", date(2026, time.March, 5)),
		tx("t4", "Spotify", "9.99", date(2026, time.January, 10)),
		tx("t5", "Spotify", "9.99", date(2026, time.February, 9)),
		tx("t6", "Spotify", "9.99", date(2026, time.March, 11)),
	}

	first := Detect(txs, DefaultConfig())
	second := Detect(txs, DefaultConfig())
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated detection differs:\nfirst:  %v\nsecond: %v", first, second)
	}

	reversed := make([]domain.Transaction, len(txs))
	for i, tr := range txs {
		reversed[len(txs)-1-i] = tr
	}
	shuffled := Detect(reversed, DefaultConfig())
	if !reflect.DeepEqual(first, shuffled) {
		t.Errorf("detection depends on input order:\nsorted:   %v\nreversed: %v", first, shuffled)
	}

	if len(first) != 2 {
		t.Fatalf("Detect returned %d series, want 2", len(first))
	}
	// output sorted by merchant key
	if first[0].Merchant != "Netflix" || first[1].Merchant != "Spotify" {
		t.Errorf("series order = [%s, %s], want [Netflix, Spotify]", first[0].Merchant, first[1].Merchant)
	}
}

// The absolute tolerance floor keeps small-amount series alive when
// the percentage tolerance alone would be pennies.
func TestDetect_AbsoluteToleranceFloor(t *testing.T) {
	txs := []domain.Transaction{
		tx("t1", "App Store", "0.99", date(2026, time.January, 1)),
		tx("t2", "App Store", "2.49", date(2026, time.January, 31)), // within $2.00 of the mean
		tx("t3", "App Store", "0.99", date(2026, time.March, 2)),
	}

	series := Detect(txs, DefaultConfig())
	if len(series) != 1 {
		t.Fatalf("Detect returned %d series, want 1 (absolute floor applies)", len(series))
	}
}

func TestMedianDays(t *testing.T) {
	tests := []struct {
		gaps []int
		want int
	}{
		{[]int{30}, 30},
		{[]int{28, 31, 29}, 29},
		{[]int{28, 30}, 29},
		{[]int{28, 31}, 30}, // 29.5 rounds half away from zero
		{[]int{7, 7, 7, 28}, 7},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.gaps), func(t *testing.T) {
			if got := medianDays(tt.gaps); got != tt.want {
				t.Errorf("medianDays(%v) = %d, want %d", tt.gaps, got, tt.want)
			}
		})
	}
}

func TestDisplayName_MostCommonSpellingWins(t *testing.T) {
	txs := []domain.Transaction{
		tx("t1", "NETFLIX.COM", "15.99", date(2026, time.January, 5)),
		tx("t2", "Netflix", "15.99", date(2026, time.February, 4)),
		tx("t3", "Netflix", "15.99", date(2026, time.March, 6)),
	}

	series := Detect(txs, DefaultConfig())
	if len(series) != 1 {
		t.Fatalf("Detect returned %d series, want 1", len(series))
	}
	if series[0].Merchant != "Netflix" {
		t.Errorf("Merchant = %q, want most common spelling %q", series[0].Merchant, "Netflix")
	}
}
