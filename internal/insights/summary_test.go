package insights

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/domain"
)

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSummarize(t *testing.T) {
	txs := []domain.Transaction{
		{Merchant: "Netflix", Amount: amount("15.99"), Date: civil.Date{Year: 2026, Month: time.January, Day: 5}},
		{Merchant: "NETFLIX.COM", Amount: amount("15.99"), Date: civil.Date{Year: 2026, Month: time.February, Day: 4}},
		{Merchant: "Sunrise Apartments", Amount: amount("1450.00"), Date: civil.Date{Year: 2026, Month: time.January, Day: 1}},
		{Merchant: "Corner Hardware", Amount: amount("37.12"), Date: civil.Date{Year: 2026, Month: time.January, Day: 12}},
	}
	classes := map[string]domain.MerchantClass{
		"netflix":            domain.ClassSubscription,
		"sunrise apartments": domain.ClassEssential,
	}

	summaries := Summarize(txs, classes)
	if len(summaries) != 2 {
		t.Fatalf("got %d months, want 2", len(summaries))
	}

	jan := summaries[0]
	if jan.Month != "2026-01" {
		t.Fatalf("first month = %q, want 2026-01 (sorted ascending)", jan.Month)
	}
	if !jan.Total.Equal(amount("1503.11")) {
		t.Errorf("January total = %s, want 1503.11", jan.Total)
	}
	if !jan.Essential.Equal(amount("1450.00")) {
		t.Errorf("January essential = %s, want 1450.00", jan.Essential)
	}
	if !jan.Subscription.Equal(amount("15.99")) {
		t.Errorf("January subscription = %s, want 15.99", jan.Subscription)
	}
	if !jan.Unclassified.Equal(amount("37.12")) {
		t.Errorf("January unclassified = %s, want 37.12", jan.Unclassified)
	}

	// classification is keyed by normalized merchant key, so the
	// NETFLIX.COM spelling still counts as a subscription
	feb := summaries[1]
	if !feb.Subscription.Equal(amount("15.99")) {
		t.Errorf("February subscription = %s, want 15.99", feb.Subscription)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if got := Summarize(nil, nil); len(got) != 0 {
		t.Fatalf("got %d months for no transactions, want 0", len(got))
	}
}
