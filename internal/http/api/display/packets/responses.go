package packets

import "github.com/deenbuddy/minaret/internal/model"

// RESPONSES FOR /api/display

type RegisterResponse struct {
	Serial    string `json:"serial"`
	ExpiresIn int    `json:"expires_in_seconds"`
}

type TimetableResponse struct {
	Board     string         `json:"board"`
	City      *string        `json:"city,omitempty"`
	Timetable model.DayTimes `json:"timetable"`
}
