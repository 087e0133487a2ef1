package schedule

import (
	"time"

	"github.com/username/budgetfolio/backend/src/models"
)

// CycleStatus is the computed payment state of one obligation. It is a view
// over current data, recomputed on every read, never stored.
type CycleStatus struct {
	// NextDue is the next date the obligation is expected to be paid.
	NextDue time.Time `json:"next_due"`
	// PaidThisCycle is true when a matched payment already covers the
	// current cycle.
	PaidThisCycle bool `json:"paid_this_cycle"`
	// LastPaid is the most recent matched payment date, if any.
	LastPaid *time.Time `json:"last_paid,omitempty"`
	// Overdue is true when the due date has passed without a matched
	// payment.
	Overdue bool `json:"overdue"`
}

// DetectPaidCycle decides whether the obligation's current cycle has already
// been paid. The most recent matched transaction date becomes lastPaid, and
// the cycle counts as paid while AddCycle(lastPaid) is still in the future.
// With no matched transactions it falls back to the stored due date and an
// ordinary overdue/upcoming comparison.
func DetectPaidCycle(ob models.RecurringObligation, matched []models.Transaction, today time.Time) CycleStatus {
	today = Day(today)

	var lastPaid time.Time
	for _, tx := range matched {
		if d := Day(tx.Date); d.After(lastPaid) {
			lastPaid = d
		}
	}

	if !lastPaid.IsZero() {
		nextCycle := AddCycle(lastPaid, ob.Frequency)
		return CycleStatus{
			NextDue:       nextCycle,
			PaidThisCycle: nextCycle.After(today),
			LastPaid:      &lastPaid,
			Overdue:       !nextCycle.After(today),
		}
	}

	if ob.NextDue == nil {
		// Not date-tracked (e.g. an ongoing variable budget).
		return CycleStatus{}
	}
	due := Day(*ob.NextDue)
	return CycleStatus{
		NextDue: due,
		Overdue: due.Before(today),
	}
}

// DueInPayPeriod reports whether the obligation's next due date falls in the
// 14-day pay period ending on payDate.
func DueInPayPeriod(nextDue, payDate time.Time) bool {
	if nextDue.IsZero() {
		return false
	}
	return IsWithinWindow(nextDue, Day(payDate).AddDate(0, 0, -14), payDate)
}
