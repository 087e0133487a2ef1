package schedule_test

import (
	"testing"
	"time"

	"github.com/username/budgetfolio/backend/src/models"
	"github.com/username/budgetfolio/backend/src/schedule"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestDay(t *testing.T) {
	loc := time.FixedZone("MST", -7*60*60)
	in := time.Date(2026, time.March, 5, 23, 45, 12, 99, loc)
	got := schedule.Day(in)
	want := day(2026, time.March, 5)
	if !got.Equal(want) {
		t.Errorf("Day(%s) = %s, want %s", in, got, want)
	}
}

func TestAddCycle(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		freq   models.Frequency
		expect time.Time
	}{
		{"biweekly adds fourteen days", day(2026, time.March, 5), models.FreqEveryTwoWeeks, day(2026, time.March, 19)},
		{"biweekly crosses month boundary", day(2026, time.February, 20), models.FreqEveryTwoWeeks, day(2026, time.March, 6)},
		{"monthly simple", day(2026, time.March, 10), models.FreqMonthly, day(2026, time.April, 10)},
		{"monthly clamps to short month", day(2026, time.January, 31), models.FreqMonthly, day(2026, time.February, 28)},
		{"monthly clamp from 30th", day(2026, time.March, 31), models.FreqMonthly, day(2026, time.April, 30)},
		{"yearly simple", day(2026, time.June, 15), models.FreqYearly, day(2027, time.June, 15)},
		{"yearly clamps leap day", day(2024, time.February, 29), models.FreqYearly, day(2025, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schedule.AddCycle(tt.start, tt.freq)
			if !got.Equal(tt.expect) {
				t.Errorf("AddCycle(%s, %s) = %s, want %s",
					tt.start.Format("2006-01-02"), tt.freq, got.Format("2006-01-02"), tt.expect.Format("2006-01-02"))
			}
		})
	}
}

func TestAddCycleIsMonotonic(t *testing.T) {
	for _, freq := range []models.Frequency{models.FreqEveryTwoWeeks, models.FreqMonthly, models.FreqYearly} {
		d := day(2026, time.January, 31)
		for i := 0; i < 24; i++ {
			next := schedule.AddCycle(d, freq)
			if !next.After(d) {
				t.Fatalf("AddCycle(%s, %s) = %s did not advance", d.Format("2006-01-02"), freq, next.Format("2006-01-02"))
			}
			d = next
		}
	}
}

func TestNextOccurrenceOnOrAfter(t *testing.T) {
	tests := []struct {
		name   string
		anchor time.Time
		freq   models.Frequency
		ref    time.Time
		expect time.Time
	}{
		{"anchor in future returned as is", day(2026, time.April, 1), models.FreqMonthly, day(2026, time.March, 1), day(2026, time.April, 1)},
		{"anchor equals ref", day(2026, time.March, 1), models.FreqMonthly, day(2026, time.March, 1), day(2026, time.March, 1)},
		{"biweekly steps forward", day(2026, time.January, 2), models.FreqEveryTwoWeeks, day(2026, time.January, 20), day(2026, time.January, 30)},
		{"biweekly lands exactly on ref", day(2026, time.January, 2), models.FreqEveryTwoWeeks, day(2026, time.January, 16), day(2026, time.January, 16)},
		{"monthly clamps end of month", day(2026, time.January, 31), models.FreqMonthly, day(2026, time.February, 10), day(2026, time.February, 28)},
		{"monthly years later", day(2020, time.May, 15), models.FreqMonthly, day(2026, time.March, 20), day(2026, time.April, 15)},
		{"yearly rolls forward", day(2024, time.July, 4), models.FreqYearly, day(2026, time.August, 1), day(2027, time.July, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schedule.NextOccurrenceOnOrAfter(tt.anchor, tt.freq, tt.ref)
			if !got.Equal(tt.expect) {
				t.Errorf("NextOccurrenceOnOrAfter(%s, %s, %s) = %s, want %s",
					tt.anchor.Format("2006-01-02"), tt.freq, tt.ref.Format("2006-01-02"),
					got.Format("2006-01-02"), tt.expect.Format("2006-01-02"))
			}
			if !got.IsZero() && got.Before(schedule.Day(tt.ref)) {
				t.Errorf("result %s is before reference %s", got.Format("2006-01-02"), tt.ref.Format("2006-01-02"))
			}
		})
	}
}

func TestNextOccurrenceOnOrAfter_ZeroAnchor(t *testing.T) {
	got := schedule.NextOccurrenceOnOrAfter(time.Time{}, models.FreqMonthly, day(2026, time.March, 1))
	if !got.IsZero() {
		t.Errorf("zero anchor produced %s, want zero", got)
	}
}

func TestIsWithinWindow(t *testing.T) {
	start := day(2026, time.February, 13)
	end := day(2026, time.February, 27)

	tests := []struct {
		name   string
		d      time.Time
		expect bool
	}{
		{"inside", day(2026, time.February, 20), true},
		{"on start boundary", start, true},
		{"on end boundary", end, true},
		{"before start", day(2026, time.February, 12), false},
		{"after end", day(2026, time.February, 28), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := schedule.IsWithinWindow(tt.d, start, end); got != tt.expect {
				t.Errorf("IsWithinWindow(%s) = %v, want %v", tt.d.Format("2006-01-02"), got, tt.expect)
			}
		})
	}
}

func TestLastWorkingDayOfMonth(t *testing.T) {
	tests := []struct {
		name   string
		year   int
		month  time.Month
		expect time.Time
	}{
		{"weekday stays", 2026, time.August, day(2026, time.August, 31)},       // Monday
		{"saturday shifts to friday", 2026, time.February, day(2026, time.February, 27)},
		{"sunday shifts to friday", 2026, time.May, day(2026, time.May, 29)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schedule.LastWorkingDayOfMonth(tt.year, tt.month)
			if !got.Equal(tt.expect) {
				t.Errorf("LastWorkingDayOfMonth(%d, %s) = %s, want %s",
					tt.year, tt.month, got.Format("2006-01-02"), tt.expect.Format("2006-01-02"))
			}
		})
	}
}
