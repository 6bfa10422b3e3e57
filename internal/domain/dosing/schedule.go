package dosing

import "time"

// NextDue computes when the next administration is expected, counting from
// the given reference time. The second return value reports whether the
// frequency advances automatically: FrequencyCustom (and anything unknown)
// returns the reference unchanged with false, which callers treat as a
// defined no-op rather than a failure.
func NextDue(from time.Time, f Frequency) (time.Time, bool) {
	switch f {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1), true
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7), true
	case FrequencyBiweekly:
		return from.AddDate(0, 0, 14), true
	case FrequencyMonthly:
		return addOneMonthClamped(from), true
	default:
		return from, false
	}
}

// addOneMonthClamped adds one calendar month keeping the day-of-month, and
// clamps to the last day when the target month is shorter (Jan 31 -> Feb 28,
// or Feb 29 in a leap year). time.AddDate would normalize Jan 31 into early
// March instead, which is not how dosing schedules read.
func addOneMonthClamped(t time.Time) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()

	ny, nm := y, m+1
	if nm > time.December {
		ny, nm = y+1, time.January
	}
	if last := daysIn(ny, nm); d > last {
		d = last
	}
	return time.Date(ny, nm, d, hh, mm, ss, t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month. Day zero of the
// following month normalizes to the last day of this one.
func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
