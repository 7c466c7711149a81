// Package dateutil holds calendar helpers shared by the trip service and the
// earnings views.
package dateutil

import (
	"math"
	"time"
)

// CalendarDaysSpanned returns the inclusive number of calendar days between
// start and end, ignoring time of day: a trip that leaves Monday night and
// returns Tuesday morning spans 2 days. Never less than 1.
func CalendarDaysSpanned(start, end time.Time) int {
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location())

	// Round rather than truncate so DST-shortened days still count whole.
	days := int(math.Round(endDay.Sub(startDay).Hours()/24)) + 1
	if days < 1 {
		return 1
	}
	return days
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Sunday beginning t's week.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
