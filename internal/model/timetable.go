package model

// DayTimes holds the computed prayer times for a single date at a single
// location. Times are local "HH:MM" strings; a time that is undefined at
// the location (polar summer/winter with rule "none") is left empty.
type DayTimes struct {
	Date     string `json:"date"`
	Hijri    string `json:"hijri"`
	Fajr     string `json:"fajr"`
	Sunrise  string `json:"sunrise"`
	Dhuhr    string `json:"dhuhr"`
	Asr      string `json:"asr"`
	Maghrib  string `json:"maghrib"`
	Isha     string `json:"isha"`
	Midnight string `json:"midnight"`
	Method   string `json:"method"`
	School   string `json:"school"`
}

type Prayer struct {
	Name   string // "FAJR", "DHUHR", ...
	Time   string // "05:12"
	Period string // "AM" or "PM"
	Iqama  string
}

// AthanPageData feeds the board-facing HTML timetable page.
type AthanPageData struct {
	Masjid    string
	City      string
	Date      string // "AUGUST 23, 2026"
	HijriDate string
	Prayers   []Prayer
}
