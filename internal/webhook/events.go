// Package webhook delivers outbound notification events to a
// user-configured HTTP endpoint. Events are a closed set of typed
// variants; serialization to the wire format (string-keyed JSON with
// every value coerced to a string) happens in one place, at dispatch.
package webhook

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/domain"
)

// Event is one outbound notification. Implementations are the only
// allowed payload shapes; there is no generic map event.
type Event interface {
	// EventType is the wire identifier for the variant.
	EventType() string

	// payload returns the variant's fields coerced to strings.
	payload() map[string]string
}

// ReminderDue notifies that a detected recurring charge is due within
// the reminder horizon.
type ReminderDue struct {
	UserID   string
	Reminder domain.ReminderEvent
}

func (e ReminderDue) EventType() string { return "reminder.due" }

func (e ReminderDue) payload() map[string]string {
	return map[string]string{
		"user_id":        e.UserID,
		"merchant":       e.Reminder.Merchant,
		"amount":         e.Reminder.Amount.StringFixed(2),
		"due_date":       e.Reminder.DueDate.String(),
		"days_until_due": strconv.Itoa(e.Reminder.DaysUntilDue),
	}
}

// NegotiationRequest asks the downstream service to negotiate a bill
// for a recurring merchant on the user's behalf.
type NegotiationRequest struct {
	UserID        string
	Merchant      string
	CurrentAmount decimal.Decimal
	TargetAmount  decimal.Decimal
	Note          string
}

func (e NegotiationRequest) EventType() string { return "negotiation.request" }

func (e NegotiationRequest) payload() map[string]string {
	return map[string]string{
		"user_id":        e.UserID,
		"merchant":       e.Merchant,
		"current_amount": e.CurrentAmount.StringFixed(2),
		"target_amount":  e.TargetAmount.StringFixed(2),
		"note":           e.Note,
	}
}
