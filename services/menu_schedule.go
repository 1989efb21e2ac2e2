package services

import (
	"time"

	"github.com/yeremiapane/intranet-portal/utils"
)

const (
	// DaysPerRotation is one publishing cycle (an ISO week).
	DaysPerRotation = 7
	// WindowDays covers the current and the next rotation.
	WindowDays = 2 * DaysPerRotation
	// retentionRotations is how far back a week must be before it is pruned.
	retentionRotations = 2
)

// StartOfISOWeek returns midnight of the Monday of the ISO week holding t,
// in t's location.
func StartOfISOWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// WeekDates returns the 14 calendar days from the Monday of ref's ISO week:
// the first 7 are the current week, the last 7 the next one.
func WeekDates(ref time.Time) []time.Time {
	start := StartOfISOWeek(ref)
	y, m, d := start.Date()

	days := make([]time.Time, 0, WindowDays)
	for i := 0; i < WindowDays; i++ {
		days = append(days, time.Date(y, m, d+i, 0, 0, 0, 0, start.Location()))
	}
	return days
}

func CurrentWeek(ref time.Time) []time.Time {
	return WeekDates(ref)[:DaysPerRotation]
}

func NextWeek(ref time.Time) []time.Time {
	return WeekDates(ref)[DaysPerRotation:]
}

// DayKeys formats days as stored in the menu table (YYYY-MM-DD).
func DayKeys(days []time.Time) []string {
	keys := make([]string, len(days))
	for i, day := range days {
		keys[i] = day.Format(utils.DayLayout)
	}
	return keys
}

// PruneWindow returns the Monday and Sunday (as day keys) of the ISO week
// that holds now minus two rotations. Menu rows inside it are stale.
func PruneWindow(now time.Time) (start, end string) {
	y, m, d := now.Date()
	back := time.Date(y, m, d-retentionRotations*DaysPerRotation, now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location())

	monday := StartOfISOWeek(back)
	my, mm, md := monday.Date()
	sunday := time.Date(my, mm, md+DaysPerRotation-1, 0, 0, 0, 0, monday.Location())

	return monday.Format(utils.DayLayout), sunday.Format(utils.DayLayout)
}
