package model

import "time"

type DhikrPreset struct {
	ID              int       `db:"id"              json:"id"`
	Phrase          string    `db:"phrase"          json:"phrase"`
	Arabic          string    `db:"arabic"          json:"arabic"`
	Transliteration string    `db:"transliteration" json:"transliteration"`
	Translation     string    `db:"translation"     json:"translation"`
	DefaultTarget   int       `db:"default_target"  json:"default_target"`
	CreatedAt       time.Time `db:"created_at"      json:"-"`
}

type DhikrSession struct {
	ID          int        `db:"id"           json:"id"`
	UserID      int        `db:"user_id"      json:"-"`
	PresetID    int        `db:"preset_id"    json:"preset_id"`
	Count       int        `db:"count"        json:"count"`
	Target      int        `db:"target"       json:"target"`
	StartedAt   time.Time  `db:"started_at"   json:"started_at"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	Preset      *DhikrPreset `db:"-"          json:"preset,omitempty"`
}

// PresetTally is one row of the daily dhikr summary.
type PresetTally struct {
	PresetID int    `db:"preset_id" json:"preset_id"`
	Phrase   string `db:"phrase"    json:"phrase"`
	Total    int    `db:"total"     json:"total"`
	Sessions int    `db:"sessions"  json:"sessions"`
}
