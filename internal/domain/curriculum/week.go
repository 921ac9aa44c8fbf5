package curriculum

import (
	"fmt"
	"time"

	"github.com/kayrademirkan/mebtg/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// AKADEMİK HAFTA
// Eğitim yılı 15 Eylül'de başlar ve tam 40 hafta olarak modellenir.
// ══════════════════════════════════════════════════════════════════════════════

// Eğitim yılı sabitleri.
const (
	// AnchorMonth is the month the academic year starts.
	AnchorMonth = time.September
	// AnchorDay is the day of AnchorMonth the academic year starts.
	AnchorDay = 15
	// MinWeek is the first academic week.
	MinWeek = 1
	// MaxWeek is the last academic week; later dates clamp here.
	MaxWeek = 40
)

// monthNames is the fixed Turkish month table. Index 0 is unused so that
// time.Month values index directly.
var monthNames = [13]string{
	"",
	"Ocak", "Şubat", "Mart", "Nisan",
	"Mayıs", "Haziran", "Temmuz", "Ağustos",
	"Eylül", "Ekim", "Kasım", "Aralık",
}

// MonthName returns the Turkish name for a month number (1-12).
// Out-of-range values yield an empty string rather than failing.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month]
}

// AnchorDate returns the September 15 anchor of the academic year containing
// the given date. Dates before September 15 belong to the previous year's
// reckoning.
func AnchorDate(date time.Time) time.Time {
	year := date.Year()
	if date.Month() < AnchorMonth || (date.Month() == AnchorMonth && date.Day() < AnchorDay) {
		year--
	}
	return time.Date(year, AnchorMonth, AnchorDay, 0, 0, 0, 0, date.Location())
}

// ResolveWeek maps a calendar date to its academic week in [MinWeek, MaxWeek].
// Every input produces a result: dates ahead of the anchor clamp to week 1,
// dates past the 40th week clamp to week 40.
func ResolveWeek(date time.Time) int {
	days := timeutil.DaysBetween(AnchorDate(date), date)
	if days < 0 {
		return MinWeek
	}

	week := days/7 + 1
	if week > MaxWeek {
		return MaxWeek
	}
	return week
}

// ValidWeek reports whether an explicitly requested week number is in range.
func ValidWeek(week int) bool {
	return week >= MinWeek && week <= MaxWeek
}

// WeekRange renders the calendar range of the Monday-start week containing
// the given date, e.g. "16–22 Eylül". The weekday offset uses Go's numbering
// (Sunday = 0), so a Sunday rolls forward into the following week. The month
// label comes from the end of the week; a week spanning two months is labeled
// with the later month.
func WeekRange(date time.Time) string {
	start := date.AddDate(0, 0, -(int(date.Weekday()) - 1))
	end := start.AddDate(0, 0, 6)
	return fmt.Sprintf("%d–%d %s", start.Day(), end.Day(), MonthName(int(end.Month())))
}

// AcademicWeek bundles the resolved week number with its display range.
type AcademicWeek struct {
	Number     int
	RangeLabel string
}

// ResolveAcademicWeek resolves both the week number and its range label.
func ResolveAcademicWeek(date time.Time) AcademicWeek {
	return AcademicWeek{
		Number:     ResolveWeek(date),
		RangeLabel: WeekRange(date),
	}
}
