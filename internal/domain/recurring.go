package domain

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Cadence is the inferred recurrence class of a series, derived from
// the typical gap between consecutive charges.
type Cadence string

const (
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
)

// RecurringSeries is one detected recurring charge for a merchant.
// A series is ephemeral: it is recomputed from the transaction list on
// every request, has no identity beyond its merchant, and is never
// updated in place.
type RecurringSeries struct {
	Merchant            string          `json:"merchant"` // canonical display name
	AverageAmount       decimal.Decimal `json:"average_amount"`
	Cadence             Cadence         `json:"cadence"`
	Occurrences         int             `json:"occurrences"`
	LastTransactionDate civil.Date      `json:"last_transaction_date"`
	NextDueEstimate     civil.Date      `json:"next_due_estimate"`
}

// ReminderEvent is an upcoming charge surfaced to the user because its
// estimated due date falls within the reminder horizon. Events are
// transient: produced, handed to the webhook dispatcher, and discarded.
type ReminderEvent struct {
	Merchant     string          `json:"merchant"`
	Amount       decimal.Decimal `json:"amount"`
	DueDate      civil.Date      `json:"due_date"`
	DaysUntilDue int             `json:"days_until_due"`
}

// MerchantClass is the user-editable classification of a merchant.
// It is consulted only by the presentation/insights layer, never by
// the detector.
type MerchantClass string

const (
	ClassEssential    MerchantClass = "essential"
	ClassSubscription MerchantClass = "subscription"
)

// ValidMerchantClass reports whether c is a known classification.
func ValidMerchantClass(c MerchantClass) bool {
	return c == ClassEssential || c == ClassSubscription
}
