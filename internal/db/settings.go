package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/deenbuddy/minaret/internal/model"
)

// defaults applied when a user has never saved settings.
const (
	DefaultMethod      = "mwl"
	DefaultSchool      = "shafi"
	DefaultHighLatRule = "midnight"
)

// fetches a user's calculation settings, substituting defaults when the
// row doesn't exist yet.
func GetUserSettings(userID int) (*model.UserSettings, error) {
	var s model.UserSettings
	query := `
	SELECT user_id, method, school, high_lat_rule, latitude, longitude, city, tz_offset_min, updated_at
	FROM user_settings
	WHERE user_id = $1;
	`
	err := DB.Get(&s, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return &model.UserSettings{
			UserID:      userID,
			Method:      DefaultMethod,
			School:      DefaultSchool,
			HighLatRule: DefaultHighLatRule,
		}, nil
	}
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("failed to get user settings")
		return nil, err
	}
	return &s, nil
}

// upserts the settings row, patching only the provided fields.
func UpdateUserSettings(userID int, method, school, highLatRule *string,
	lat, lng *float64, city *string, tzOffsetMin *int) (*model.UserSettings, error) {
	query := `
	INSERT INTO user_settings (user_id, method, school, high_lat_rule, latitude, longitude, city, tz_offset_min, updated_at)
	VALUES ($1, COALESCE($2, $9), COALESCE($3, $10), COALESCE($4, $11), $5, $6, $7, $8, now())
	ON CONFLICT (user_id) DO UPDATE SET
		method        = COALESCE($2, user_settings.method),
		school        = COALESCE($3, user_settings.school),
		high_lat_rule = COALESCE($4, user_settings.high_lat_rule),
		latitude      = COALESCE($5, user_settings.latitude),
		longitude     = COALESCE($6, user_settings.longitude),
		city          = COALESCE($7, user_settings.city),
		tz_offset_min = COALESCE($8, user_settings.tz_offset_min),
		updated_at    = now();
	`
	_, err := DB.Exec(query, userID, method, school, highLatRule, lat, lng, city, tzOffsetMin,
		DefaultMethod, DefaultSchool, DefaultHighLatRule)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("failed to update user settings")
		return nil, err
	}
	return GetUserSettings(userID)
}
