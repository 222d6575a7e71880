// Package hijri converts between Gregorian dates and the tabular Islamic
// calendar (Kuwaiti algorithm, 16-based leap cycle). Tabular dates track
// the observational calendars used by most authorities to within a day.
package hijri

import (
	"fmt"
	"time"

	"github.com/deenbuddy/minaret/internal/model"
)

var monthNames = [12]string{
	"Muharram", "Safar", "Rabi' al-Awwal", "Rabi' al-Thani",
	"Jumada al-Awwal", "Jumada al-Thani", "Rajab", "Sha'ban",
	"Ramadan", "Shawwal", "Dhu al-Qi'dah", "Dhu al-Hijjah",
}

// FromTime converts the calendar date of t (in its own location) to the
// tabular Hijri date.
func FromTime(t time.Time) model.HijriDate {
	y, m, d := t.Date()
	hy, hm, hd := jdToHijri(gregorianToJD(y, int(m), d))
	return model.HijriDate{
		Year:      hy,
		Month:     hm,
		Day:       hd,
		MonthName: MonthName(hm),
		Weekday:   t.Weekday().String(),
	}
}

// ToTime converts a Hijri date to the Gregorian date at midnight UTC.
func ToTime(year, month, day int) time.Time {
	gy, gm, gd := jdToGregorian(hijriToJD(year, month, day))
	return time.Date(gy, time.Month(gm), gd, 0, 0, 0, 0, time.UTC)
}

// MonthName returns the transliterated name for month 1..12.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// Format renders a Hijri date as "9 Rabi' al-Awwal 1448 AH".
func Format(h model.HijriDate) string {
	return fmt.Sprintf("%d %s %d AH", h.Day, MonthName(h.Month), h.Year)
}

// DaysInMonth returns 29 or 30 for the given tabular month.
func DaysInMonth(year, month int) int {
	next := hijriToJD(year, month+1, 1)
	if month == 12 {
		next = hijriToJD(year+1, 1, 1)
	}
	return next - hijriToJD(year, month, 1)
}

// IsLeapYear reports whether the tabular year has 355 days.
func IsLeapYear(year int) bool {
	return (11*year+14)%30 < 11
}

// gregorianToJD returns the chronological Julian day number of a
// Gregorian calendar date (Fliegel & Van Flandern).
func gregorianToJD(year, month, day int) int {
	return (1461*(year+4800+(month-14)/12))/4 +
		(367*(month-2-12*((month-14)/12)))/12 -
		(3*((year+4900+(month-14)/12)/100))/4 +
		day - 32075
}

func jdToGregorian(jd int) (year, month, day int) {
	l := jd + 68569
	n := (4 * l) / 146097
	l = l - (146097*n+3)/4
	i := (4000 * (l + 1)) / 1461001
	l = l - (1461*i)/4 + 31
	j := (80 * l) / 2447
	day = l - (2447*j)/80
	l = j / 11
	month = j + 2 - 12*l
	year = 100*(n-49) + i + l
	return year, month, day
}

func jdToHijri(jd int) (year, month, day int) {
	l := jd - 1948440 + 10632
	n := (l - 1) / 10631
	l = l - 10631*n + 354
	j := ((10985-l)/5316)*((50*l)/17719) + (l/5670)*((43*l)/15238)
	l = l - ((30-j)/15)*((17719*j)/50) - (j/16)*((15238*j)/43) + 29
	month = (24 * l) / 709
	day = l - (709*month)/24
	year = 30*n + j - 30
	return year, month, day
}

func hijriToJD(year, month, day int) int {
	return (11*year+3)/30 + 354*year + 30*month -
		(month-1)/2 + day + 1948440 - 385
}
