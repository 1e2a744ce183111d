package recurring

import (
	"sort"

	"cloud.google.com/go/civil"

	"github.com/benjaminfrostllc/credit-wizard-sub001/internal/domain"
)

// BuildReminders converts detected series into reminder events for
// every series whose next due estimate falls within [asOf,
// asOf+horizonDays] inclusive. Series whose estimate has already
// passed produce no event.
//
// The result is sorted by due date ascending (then merchant) so output
// is deterministic for a given input.
func BuildReminders(series []domain.RecurringSeries, asOf civil.Date, horizonDays int) []domain.ReminderEvent {
	var events []domain.ReminderEvent
	for _, s := range series {
		days := s.NextDueEstimate.DaysSince(asOf)
		if days < 0 || days > horizonDays {
			continue
		}
		events = append(events, domain.ReminderEvent{
			Merchant:     s.Merchant,
			Amount:       s.AverageAmount,
			DueDate:      s.NextDueEstimate,
			DaysUntilDue: days,
		})
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].DueDate != events[j].DueDate {
			return events[i].DueDate.Before(events[j].DueDate)
		}
		return events[i].Merchant < events[j].Merchant
	})
	return events
}
