package packets

import (
	"github.com/deenbuddy/minaret/internal/model"
	"github.com/deenbuddy/minaret/internal/quran"
)

// RESPONSES FOR /api/app

type ProfileResponse struct {
	ID        int     `json:"id"`
	Email     string  `json:"email"`
	Name      *string `json:"name"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type MonthTimetableResponse struct {
	Year  int              `json:"year"`
	Month int              `json:"month"`
	Days  []model.DayTimes `json:"days"`
}

type SearchResponse struct {
	Query     string         `json:"query"`
	Corrected string         `json:"corrected"`
	Results   []quran.Result `json:"results"`
}

type SearchHistoryResponse struct {
	Queries []string `json:"queries"`
}

type TodayResponse struct {
	Gregorian string          `json:"gregorian"`
	Hijri     model.HijriDate `json:"hijri"`
	Formatted string          `json:"formatted"`
	Event     *string         `json:"event,omitempty"`
}

type ConvertResponse struct {
	Gregorian string          `json:"gregorian"`
	Hijri     model.HijriDate `json:"hijri"`
	Formatted string          `json:"formatted"`
}

type DhikrSummaryResponse struct {
	Date       string              `json:"date"`
	Total      int                 `json:"total"`
	Tallies    []model.PresetTally `json:"tallies"`
	StreakDays int                 `json:"streak_days"`
}
