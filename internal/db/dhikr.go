package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/deenbuddy/minaret/internal/model"
)

// lists the seeded dhikr presets.
func ListDhikrPresets() ([]model.DhikrPreset, error) {
	var out []model.DhikrPreset
	query := `
	SELECT id, phrase, arabic, transliteration, translation, default_target, created_at
	FROM dhikr_presets
	ORDER BY id;
	`
	if err := DB.Select(&out, query); err != nil {
		log.Error().Err(err).Msg("failed to list dhikr presets")
		return nil, err
	}
	return out, nil
}

// fetches one preset.
func GetDhikrPreset(id int) (*model.DhikrPreset, error) {
	var p model.DhikrPreset
	query := `
	SELECT id, phrase, arabic, transliteration, translation, default_target, created_at
	FROM dhikr_presets
	WHERE id = $1;
	`
	if err := DB.Get(&p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Int("preset_id", id).Msg("failed to get dhikr preset")
		return nil, err
	}
	return &p, nil
}

// opens a counting session. target falls back to the preset default
// when zero.
func CreateDhikrSession(userID, presetID, target, count int) (*model.DhikrSession, error) {
	query := `
	INSERT INTO dhikr_sessions (user_id, preset_id, count, target, started_at, completed_at)
	SELECT $1, $2, $3, t.target, now(),
	       CASE WHEN t.target > 0 AND $3 >= t.target THEN now() ELSE NULL END
	FROM (
	    SELECT CASE WHEN $4 > 0 THEN $4
	           ELSE (SELECT default_target FROM dhikr_presets WHERE id = $2) END AS target
	) t
	RETURNING id;
	`
	var id int
	if err := DB.QueryRow(query, userID, presetID, count, target).Scan(&id); err != nil {
		log.Error().Err(err).Int("user_id", userID).Int("preset_id", presetID).Msg("failed to create dhikr session")
		return nil, err
	}
	return GetDhikrSession(userID, id)
}

// fetches one of the user's sessions.
func GetDhikrSession(userID, sessionID int) (*model.DhikrSession, error) {
	var s model.DhikrSession
	query := `
	SELECT id, user_id, preset_id, count, target, started_at, completed_at
	FROM dhikr_sessions
	WHERE id = $1 AND user_id = $2;
	`
	if err := DB.Get(&s, query, sessionID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Int("session_id", sessionID).Msg("failed to get dhikr session")
		return nil, err
	}
	return &s, nil
}

// adds delta to a session's count; marks completion the first time the
// count reaches the target.
func IncrementDhikrSession(userID, sessionID, delta int) (*model.DhikrSession, error) {
	query := `
	UPDATE dhikr_sessions
	SET count = count + $3,
	    completed_at = CASE
	        WHEN completed_at IS NULL AND count + $3 >= target THEN now()
	        ELSE completed_at
	    END
	WHERE id = $1 AND user_id = $2;
	`
	res, err := DB.Exec(query, sessionID, userID, delta)
	if err != nil {
		log.Error().Err(err).Int("session_id", sessionID).Msg("failed to increment dhikr session")
		return nil, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, sql.ErrNoRows
	}
	return GetDhikrSession(userID, sessionID)
}

// lists the user's sessions started on the given local date.
func ListDhikrSessions(userID int, day time.Time) ([]model.DhikrSession, error) {
	var out []model.DhikrSession
	query := `
	SELECT id, user_id, preset_id, count, target, started_at, completed_at
	FROM dhikr_sessions
	WHERE user_id = $1 AND started_at >= $2 AND started_at < $3
	ORDER BY started_at DESC;
	`
	start := day.Truncate(24 * time.Hour)
	if err := DB.Select(&out, query, userID, start, start.AddDate(0, 0, 1)); err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("failed to list dhikr sessions")
		return nil, err
	}
	return out, nil
}

// tallies one day per preset.
func DhikrDailySummary(userID int, day time.Time) ([]model.PresetTally, error) {
	var out []model.PresetTally
	query := `
	SELECT s.preset_id, p.phrase, SUM(s.count) AS total, COUNT(*) AS sessions
	FROM dhikr_sessions s
	JOIN dhikr_presets p ON p.id = s.preset_id
	WHERE s.user_id = $1 AND s.started_at >= $2 AND s.started_at < $3
	GROUP BY s.preset_id, p.phrase
	ORDER BY total DESC;
	`
	start := day.Truncate(24 * time.Hour)
	if err := DB.Select(&out, query, userID, start, start.AddDate(0, 0, 1)); err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("failed to build dhikr summary")
		return nil, err
	}
	return out, nil
}

// returns the distinct days (UTC, newest first) on which the user
// recorded any dhikr, capped at limit. The streak is computed in the
// handler from this list.
func ListDhikrDays(userID, limit int) ([]time.Time, error) {
	var out []time.Time
	query := `
	SELECT DISTINCT date_trunc('day', started_at) AS day
	FROM dhikr_sessions
	WHERE user_id = $1
	ORDER BY day DESC
	LIMIT $2;
	`
	if err := DB.Select(&out, query, userID, limit); err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("failed to list dhikr days")
		return nil, err
	}
	return out, nil
}
