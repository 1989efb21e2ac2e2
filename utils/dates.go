package utils

import "time"

// DayLayout is the storage and wire format for menu days.
const DayLayout = "2006-01-02"

var weekdaysPT = [...]string{
	time.Sunday:    "domingo",
	time.Monday:    "segunda-feira",
	time.Tuesday:   "terça-feira",
	time.Wednesday: "quarta-feira",
	time.Thursday:  "quinta-feira",
	time.Friday:    "sexta-feira",
	time.Saturday:  "sábado",
}

// WeekdayPT returns the pt-BR weekday name, lower case ("segunda-feira").
func WeekdayPT(t time.Time) string {
	return weekdaysPT[t.Weekday()]
}

// DayLabel formats t as "DD/MM weekday", e.g. "22/10 terça-feira".
func DayLabel(t time.Time) string {
	return t.Format("02/01") + " " + WeekdayPT(t)
}

// DayLabelFromKey parses a stored YYYY-MM-DD day and formats it with
// DayLabel. Keys that do not parse are returned unchanged.
func DayLabelFromKey(day string) string {
	t, err := time.ParseInLocation(DayLayout, day, time.Local)
	if err != nil {
		return day
	}
	return DayLabel(t)
}

// FormatBR formats a date as DD/MM/YYYY; nil gives "".
func FormatBR(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}

// FormatBRDateTime formats a timestamp as DD/MM/YYYY HH:mm:ss; nil gives "".
func FormatBRDateTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006 15:04:05")
}
