package types

import (
	"time"
)

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

// NormalizeToDate truncates a timestamp to UTC midnight. The schedule engine
// works on calendar dates only; time-of-day is ignored.
func NormalizeToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last day of t's month.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

// DaysInMonth returns the calendar length of t's month (28/29/30/31),
// leap-year aware via time.Date normalization.
func DaysInMonth(t time.Time) int {
	return MonthEnd(t).Day()
}

func MaxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func MinDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// AnchorInMonth returns the date in t's month whose day-of-month is the given
// anchor day. The anchor is restricted to [1,28] so the result always exists.
func AnchorInMonth(t time.Time, anchorDay int) time.Time {
	return time.Date(t.Year(), t.Month(), anchorDay, 0, 0, 0, 0, time.UTC)
}

// AddClampedDate adds years/months/days to t, clamping the day to the last
// valid day of the resulting month instead of letting time.AddDate overflow
// (e.g. Jan 31 + 1 month is Feb 28/29, not Mar 2/3).
func AddClampedDate(t time.Time, years, months, days int) time.Time {
	y, m, d := t.Date()
	h, min, sec := t.Clock()

	newY := y + years
	newM := time.Month(int(m) + months)

	// If we move beyond December, it adjusts correctly,
	// for example adding 2 months to November will land on January next year.
	for newM > 12 {
		newM -= 12
		newY++
	}
	for newM < 1 {
		newM += 12
		newY--
	}

	// Find the last valid day of the new month
	firstOfNextMonth := time.Date(newY, newM+1, 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfNextMonth.AddDate(0, 0, -1).Day()

	newD := d + days
	if newD > lastDay {
		newD = lastDay
	}

	return time.Date(newY, newM, newD, h, min, sec, t.Nanosecond(), t.Location())
}
