// Package timeutil provides timezone utilities for the Istanbul timezone (UTC+3).
// The MEB academic calendar is defined in local Turkish time, so week
// resolution and all user-facing dates are computed in this zone.
// No external dependencies - uses only standard library.
package timeutil

import (
	"time"
)

// IstanbulTZ is the Istanbul timezone (UTC+3, no DST).
// Turkey stays on UTC+3 year-round since 2016, so this is constant.
var IstanbulTZ = time.FixedZone("Europe/Istanbul", 3*60*60)

// Now returns the current time in Istanbul timezone.
func Now() time.Time {
	return time.Now().In(IstanbulTZ)
}

// ToIstanbul converts a time to Istanbul timezone.
func ToIstanbul(t time.Time) time.Time {
	return t.In(IstanbulTZ)
}

// Date creates a time in Istanbul timezone with the given date.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, IstanbulTZ)
}

// DateTime creates a time in Istanbul timezone with the given date and time.
func DateTime(year, month, day, hour, min, sec int) time.Time {
	return time.Date(year, time.Month(month), day, hour, min, sec, 0, IstanbulTZ)
}

// StartOfDay returns the start of the day (00:00:00) in Istanbul timezone.
func StartOfDay(t time.Time) time.Time {
	ist := ToIstanbul(t)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 0, 0, 0, 0, IstanbulTZ)
}

// DaysBetween returns the number of whole days from a to b, negative when
// b is before a. Both times are truncated to their Istanbul calendar day.
func DaysBetween(a, b time.Time) int {
	from := StartOfDay(a)
	to := StartOfDay(b)
	return int(to.Sub(from).Hours() / 24)
}

// IsWeekend checks if the given time is on a weekend.
func IsWeekend(t time.Time) bool {
	weekday := ToIstanbul(t).Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// Common date/time formats.
const (
	// FormatDate is the standard date format (YYYY-MM-DD).
	FormatDate = "2006-01-02"
	// FormatTurkishDate is the Turkish date format (DD.MM.YYYY).
	FormatTurkishDate = "02.01.2006"
	// FormatDateTime is the standard datetime format.
	FormatDateTime = "2006-01-02 15:04"
)

// FormatIstanbul formats a time in Istanbul timezone with the given layout.
func FormatIstanbul(t time.Time, layout string) string {
	return ToIstanbul(t).Format(layout)
}
