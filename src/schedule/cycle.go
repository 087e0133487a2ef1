// Package schedule implements the date stepping used by obligations,
// auto-transfers and paychecks: cycle advancement by frequency, next
// occurrence on or after a reference date, window membership and
// working-day adjustments. All functions work at calendar-day granularity
// and are pure.
package schedule

import (
	"time"

	"github.com/username/budgetfolio/backend/src/models"
)

// Day truncates a time to its calendar day in UTC. All comparisons in this
// package happen on Day-normalized values so time-of-day never matters.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// addMonthsClamped advances by whole months, clamping the day-of-month to the
// target month's last day. time.Time.AddDate would normalize Jan 31 + 1 month
// into March, which is wrong for billing dates.
func addMonthsClamped(d time.Time, months int) time.Time {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	day := d.Day()
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

// AddCycle advances a date by one cycle of the given frequency.
// Monthly advancement clamps to the shorter month's last day; yearly
// advancement clamps Feb 29 to Feb 28 on non-leap years.
func AddCycle(d time.Time, freq models.Frequency) time.Time {
	d = Day(d)
	switch freq {
	case models.FreqEveryTwoWeeks:
		return d.AddDate(0, 0, 14)
	case models.FreqYearly:
		return addMonthsClamped(d, 12)
	default: // monthly
		return addMonthsClamped(d, 1)
	}
}

// NextOccurrenceOnOrAfter returns the first occurrence of the anchor's cycle
// that lands on or after the reference date. A zero anchor is propagated
// unchanged rather than treated as an error.
func NextOccurrenceOnOrAfter(anchor time.Time, freq models.Frequency, ref time.Time) time.Time {
	if anchor.IsZero() {
		return anchor
	}
	anchor = Day(anchor)
	ref = Day(ref)
	if !anchor.Before(ref) {
		return anchor
	}
	switch freq {
	case models.FreqEveryTwoWeeks:
		days := int(ref.Sub(anchor).Hours() / 24)
		steps := days / 14
		occ := anchor.AddDate(0, 0, steps*14)
		if occ.Before(ref) {
			occ = occ.AddDate(0, 0, 14)
		}
		return occ
	case models.FreqMonthly:
		// Compute the month offset directly instead of looping.
		months := (ref.Year()-anchor.Year())*12 + int(ref.Month()) - int(anchor.Month())
		if months < 0 {
			months = 0
		}
		occ := addMonthsClamped(anchor, months)
		if occ.Before(ref) {
			occ = addMonthsClamped(anchor, months+1)
		}
		return occ
	default: // yearly
		years := ref.Year() - anchor.Year()
		if years < 0 {
			years = 0
		}
		occ := addMonthsClamped(anchor, years*12)
		if occ.Before(ref) {
			occ = addMonthsClamped(anchor, (years+1)*12)
		}
		return occ
	}
}

// IsWithinWindow reports whether a date falls inside [start, end], compared
// by calendar day with inclusive bounds.
func IsWithinWindow(d, start, end time.Time) bool {
	d = Day(d)
	return !d.Before(Day(start)) && !d.After(Day(end))
}

// LastWorkingDayOfMonth returns the last calendar day of the month, shifted
// back to Friday when it lands on a weekend.
func LastWorkingDayOfMonth(year int, month time.Month) time.Time {
	d := time.Date(year, month, daysInMonth(year, month), 0, 0, 0, 0, time.UTC)
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, -1)
	case time.Sunday:
		return d.AddDate(0, 0, -2)
	}
	return d
}
