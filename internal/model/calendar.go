package model

// HijriDate is a date on the tabular Islamic calendar.
type HijriDate struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	MonthName string `json:"month_name"`
	Weekday   string `json:"weekday"`
}

// IslamicEvent marks a fixed observance on the Hijri calendar.
type IslamicEvent struct {
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	Name      string `json:"name"`
	Gregorian string `json:"gregorian,omitempty"`
}
