package schedule_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/budgetfolio/backend/src/models"
	"github.com/username/budgetfolio/backend/src/schedule"
)

func paymentOn(d time.Time) models.Transaction {
	return models.Transaction{ID: "tx-" + d.Format("2006-01-02"), Date: d, Amount: decimal.NewFromInt(-100)}
}

func TestDetectPaidCycle(t *testing.T) {
	due := day(2026, time.March, 1)
	monthly := models.RecurringObligation{
		ID: "o1", Name: "Electric", Frequency: models.FreqMonthly,
		NextDue: &due, Amount: decimal.NewFromInt(100), Account: models.AccountBills,
	}

	t.Run("recent payment covers the cycle", func(t *testing.T) {
		got := schedule.DetectPaidCycle(monthly, []models.Transaction{paymentOn(day(2026, time.March, 5))}, day(2026, time.March, 10))
		if !got.PaidThisCycle {
			t.Error("expected PaidThisCycle")
		}
		if got.Overdue {
			t.Error("paid cycle must not be overdue")
		}
		if !got.NextDue.Equal(day(2026, time.April, 5)) {
			t.Errorf("next due %s, want 2026-04-05", got.NextDue.Format("2006-01-02"))
		}
		if got.LastPaid == nil || !got.LastPaid.Equal(day(2026, time.March, 5)) {
			t.Errorf("last paid %v, want 2026-03-05", got.LastPaid)
		}
	})

	t.Run("cycle lapses once the next due date passes", func(t *testing.T) {
		got := schedule.DetectPaidCycle(monthly, []models.Transaction{paymentOn(day(2026, time.March, 5))}, day(2026, time.April, 5))
		if got.PaidThisCycle {
			t.Error("cycle should have lapsed")
		}
		if !got.Overdue {
			t.Error("lapsed cycle is overdue")
		}
	})

	t.Run("most recent payment wins", func(t *testing.T) {
		matched := []models.Transaction{
			paymentOn(day(2026, time.February, 4)),
			paymentOn(day(2026, time.March, 5)),
			paymentOn(day(2026, time.January, 6)),
		}
		got := schedule.DetectPaidCycle(monthly, matched, day(2026, time.March, 10))
		if got.LastPaid == nil || !got.LastPaid.Equal(day(2026, time.March, 5)) {
			t.Errorf("last paid %v, want the most recent payment", got.LastPaid)
		}
	})

	t.Run("no payments falls back to stored due date", func(t *testing.T) {
		got := schedule.DetectPaidCycle(monthly, nil, day(2026, time.March, 10))
		if got.PaidThisCycle {
			t.Error("no payment, cycle cannot be paid")
		}
		if !got.Overdue {
			t.Error("due date passed without payment, expected overdue")
		}
		if !got.NextDue.Equal(due) {
			t.Errorf("next due %s, want the stored date", got.NextDue.Format("2006-01-02"))
		}
	})

	t.Run("upcoming due date is neither paid nor overdue", func(t *testing.T) {
		got := schedule.DetectPaidCycle(monthly, nil, day(2026, time.February, 20))
		if got.PaidThisCycle || got.Overdue {
			t.Errorf("upcoming obligation: paid=%v overdue=%v, want both false", got.PaidThisCycle, got.Overdue)
		}
	})

	t.Run("untracked obligation yields empty status", func(t *testing.T) {
		untracked := monthly
		untracked.NextDue = nil
		got := schedule.DetectPaidCycle(untracked, nil, day(2026, time.March, 10))
		if !got.NextDue.IsZero() || got.PaidThisCycle || got.Overdue || got.LastPaid != nil {
			t.Errorf("untracked obligation produced %+v, want zero status", got)
		}
	})
}

func TestDueInPayPeriod(t *testing.T) {
	payDate := day(2026, time.February, 27)

	tests := []struct {
		name    string
		nextDue time.Time
		expect  bool
	}{
		{"due on payday", payDate, true},
		{"due at window start", day(2026, time.February, 13), true},
		{"due mid window", day(2026, time.February, 20), true},
		{"due before window", day(2026, time.February, 12), false},
		{"due after payday", day(2026, time.February, 28), false},
		{"zero due date", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := schedule.DueInPayPeriod(tt.nextDue, payDate); got != tt.expect {
				t.Errorf("DueInPayPeriod(%s, %s) = %v, want %v",
					tt.nextDue.Format("2006-01-02"), payDate.Format("2006-01-02"), got, tt.expect)
			}
		})
	}
}
