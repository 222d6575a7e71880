package model

import "time"

// Board represents a mosque display device in the system.
type Board struct {
	ID          int       `db:"id"            json:"id"`
	Serial      *string   `db:"serial"        json:"serial"`
	Name        string    `db:"name"          json:"name"`
	City        *string   `db:"city"          json:"city"`
	Latitude    float64   `db:"latitude"      json:"latitude"`
	Longitude   float64   `db:"longitude"     json:"longitude"`
	TzOffsetMin int       `db:"tz_offset_min" json:"tz_offset_min"`
	Method      string    `db:"method"        json:"method"`
	School      string    `db:"school"        json:"school"`
	IqamaOffset int       `db:"iqama_offset"  json:"iqama_offset"`
	Paired      bool      `db:"paired"        json:"paired"`
	CreatedAt   time.Time `db:"created_at"    json:"created_at"`
	CreatedBy   int       `db:"created_by"    json:"created_by"`
	UpdatedAt   time.Time `db:"updated_at"    json:"updated_at"`
}
