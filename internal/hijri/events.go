package hijri

import (
	"time"

	"github.com/deenbuddy/minaret/internal/model"
)

// Fixed observances of the Hijri year, in calendar order.
var observances = []struct {
	month, day int
	name       string
}{
	{1, 1, "Islamic New Year"},
	{1, 10, "Day of Ashura"},
	{3, 12, "Mawlid al-Nabi"},
	{7, 27, "Isra and Mi'raj"},
	{8, 15, "Mid-Sha'ban"},
	{9, 1, "First day of Ramadan"},
	{9, 27, "Laylat al-Qadr"},
	{10, 1, "Eid al-Fitr"},
	{12, 9, "Day of Arafah"},
	{12, 10, "Eid al-Adha"},
}

// EventsForYear returns the fixed observances of one Hijri year with
// their Gregorian dates.
func EventsForYear(year int) []model.IslamicEvent {
	events := make([]model.IslamicEvent, 0, len(observances))
	for _, o := range observances {
		events = append(events, model.IslamicEvent{
			Month:     o.month,
			Day:       o.day,
			Name:      o.name,
			Gregorian: ToTime(year, o.month, o.day).Format(time.DateOnly),
		})
	}
	return events
}

// EventOn returns the observance falling on the given Hijri day, if any.
func EventOn(month, day int) (string, bool) {
	for _, o := range observances {
		if o.month == month && o.day == day {
			return o.name, true
		}
	}
	return "", false
}

// UpcomingEvents returns the next n observances on or after the calendar
// date of from.
func UpcomingEvents(from time.Time, n int) []model.IslamicEvent {
	y, m, d := from.Date()
	fromJD := gregorianToJD(y, int(m), d)
	startYear := FromTime(from).Year

	events := make([]model.IslamicEvent, 0, n)
	for year := startYear; year <= startYear+2 && len(events) < n; year++ {
		for _, o := range observances {
			if len(events) == n {
				break
			}
			if hijriToJD(year, o.month, o.day) < fromJD {
				continue
			}
			events = append(events, model.IslamicEvent{
				Month:     o.month,
				Day:       o.day,
				Name:      o.name,
				Gregorian: ToTime(year, o.month, o.day).Format(time.DateOnly),
			})
		}
	}
	return events
}

// MonthDay is one cell of a Hijri month view.
type MonthDay struct {
	Day       int    `json:"day"`
	Gregorian string `json:"gregorian"`
	Weekday   string `json:"weekday"`
	Event     string `json:"event,omitempty"`
}

// Month lays out a full tabular Hijri month against Gregorian dates.
func Month(year, month int) []MonthDay {
	days := make([]MonthDay, 0, 30)
	for day := 1; day <= DaysInMonth(year, month); day++ {
		g := ToTime(year, month, day)
		cell := MonthDay{
			Day:       day,
			Gregorian: g.Format(time.DateOnly),
			Weekday:   g.Weekday().String(),
		}
		if name, ok := EventOn(month, day); ok {
			cell.Event = name
		}
		days = append(days, cell)
	}
	return days
}
