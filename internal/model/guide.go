package model

import "time"

type Guide struct {
	ID          int         `db:"id"           json:"id"`
	Title       string      `db:"title"        json:"title"`
	Prayer      string      `db:"prayer"       json:"prayer"`
	School      string      `db:"school"       json:"school"`
	Summary     *string     `db:"summary"      json:"summary,omitempty"`
	Difficulty  string      `db:"difficulty"   json:"difficulty"`
	Published   bool        `db:"published"    json:"published"`
	CreatedAt   time.Time   `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"   json:"updated_at"`
	CreatedBy   int         `db:"created_by"   json:"created_by"`
	Steps       []GuideStep `json:"steps,omitempty"`
}

type GuideStep struct {
	ID        int       `db:"id"         json:"id"`
	GuideID   int       `db:"guide_id"   json:"guide_id"`
	Position  int       `db:"position"   json:"position"`
	Title     string    `db:"title"      json:"title"`
	Body      string    `db:"body"       json:"body"`
	Arabic    *string   `db:"arabic"     json:"arabic,omitempty"`
	MediaURL  *string   `db:"media_url"  json:"media_url,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
