// Package dateutil holds the calendar arithmetic the leave engine depends on.
// All functions are pure; callers must reject start > end before calling.
package dateutil

import "time"

// InclusiveDayCount returns the number of calendar days in [start, end],
// counting both endpoints. Display-only: balances are debited in working
// days, see WeekdayCount.
func InclusiveDayCount(start, end time.Time) int {
	s := truncateToDate(start)
	e := truncateToDate(end)
	return int(e.Sub(s).Hours()/24) + 1
}

// WeekdayCount returns the number of Monday-Friday dates in [start, end].
// This is the balance-affecting formula: allocations are expressed in
// working days.
func WeekdayCount(start, end time.Time) int {
	s := truncateToDate(start)
	e := truncateToDate(end)

	count := 0
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

// SameCalendarDate reports whether a and b fall on the same year/month/day,
// ignoring time-of-day and timezone offset. Never compare leave dates with
// timestamp arithmetic; offsets shift events across midnight.
func SameCalendarDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// OnOrAfterCalendarDate reports whether a's calendar date is >= b's.
func OnOrAfterCalendarDate(a, b time.Time) bool {
	return !truncateToDate(a).Before(truncateToDate(b))
}

// OnOrBeforeCalendarDate reports whether a's calendar date is <= b's.
func OnOrBeforeCalendarDate(a, b time.Time) bool {
	return !truncateToDate(a).After(truncateToDate(b))
}

// CalendarDaysUntil returns how many calendar days lie between from and to
// (to - from), negative when to is in the past.
func CalendarDaysUntil(from, to time.Time) int {
	return int(truncateToDate(to).Sub(truncateToDate(from)).Hours() / 24)
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
