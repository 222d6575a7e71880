package model

import "time"

type User struct {
	ID             int       `db:"id"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	Name           *string   `db:"name"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// UserSettings carries the per-user calculation preferences applied to
// every personalized prayer-time and qibla request.
type UserSettings struct {
	UserID      int       `db:"user_id"      json:"-"`
	Method      string    `db:"method"       json:"method"`
	School      string    `db:"school"       json:"school"`
	HighLatRule string    `db:"high_lat_rule" json:"high_lat_rule"`
	Latitude    *float64  `db:"latitude"     json:"latitude,omitempty"`
	Longitude   *float64  `db:"longitude"    json:"longitude,omitempty"`
	City        *string   `db:"city"         json:"city,omitempty"`
	TzOffsetMin *int      `db:"tz_offset_min" json:"tz_offset_min,omitempty"`
	UpdatedAt   time.Time `db:"updated_at"   json:"updated_at"`
}
