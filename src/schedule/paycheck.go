package schedule

import (
	"time"

	"github.com/username/budgetfolio/backend/src/models"
)

// NextPaycheckOnOrAfter returns the next date this paycheck arrives, on or
// after the reference date. Biweekly paychecks advance the raw anchor in
// 14-day steps with no day-of-week assumption; fixed-day paychecks clamp to
// the month's last day; last-working-day paychecks land on the month's last
// working day.
func NextPaycheckOnOrAfter(pc models.PaycheckConfig, ref time.Time) time.Time {
	ref = Day(ref)
	switch pc.Frequency {
	case models.PayBiweekly:
		if pc.AnchorDate == nil {
			return time.Time{}
		}
		return NextOccurrenceOnOrAfter(*pc.AnchorDate, models.FreqEveryTwoWeeks, ref)
	case models.PayMonthlyDay:
		day := pc.DayOfMonth
		if last := daysInMonth(ref.Year(), ref.Month()); day > last {
			day = last
		}
		d := time.Date(ref.Year(), ref.Month(), day, 0, 0, 0, 0, time.UTC)
		if d.Before(ref) {
			next := ref.AddDate(0, 1, 0)
			day = pc.DayOfMonth
			if last := daysInMonth(next.Year(), next.Month()); day > last {
				day = last
			}
			d = time.Date(next.Year(), next.Month(), day, 0, 0, 0, 0, time.UTC)
		}
		return d
	case models.PayLastWorkingDay:
		d := LastWorkingDayOfMonth(ref.Year(), ref.Month())
		if d.Before(ref) {
			next := ref.AddDate(0, 1, 0)
			d = LastWorkingDayOfMonth(next.Year(), next.Month())
		}
		return d
	}
	return time.Time{}
}

// PaycheckDatesFundingMonth enumerates the paycheck dates whose income is
// attributed to the given calendar month. Biweekly series yield 2 or 3 dates
// depending on alignment. A last-working-day paycheck dated at the end of
// month M funds month M+1, so for a target month this returns the date in the
// preceding month.
func PaycheckDatesFundingMonth(pc models.PaycheckConfig, year int, month time.Month) []time.Time {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	switch pc.Frequency {
	case models.PayBiweekly:
		if pc.AnchorDate == nil {
			return nil
		}
		var dates []time.Time
		occ := NextOccurrenceOnOrAfter(*pc.AnchorDate, models.FreqEveryTwoWeeks, monthStart)
		for !occ.After(monthEnd) {
			dates = append(dates, occ)
			occ = occ.AddDate(0, 0, 14)
		}
		return dates
	case models.PayMonthlyDay:
		day := pc.DayOfMonth
		if last := daysInMonth(year, month); day > last {
			day = last
		}
		return []time.Time{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
	case models.PayLastWorkingDay:
		prev := monthStart.AddDate(0, -1, 0)
		return []time.Time{LastWorkingDayOfMonth(prev.Year(), prev.Month())}
	}
	return nil
}
