package db

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/deenbuddy/minaret/internal/model"
)

// upserts one verse keyed on (surah, ayah), returns its ID.
func UpsertVerse(v model.Verse) (int, error) {
	query := `
	INSERT INTO verses (surah, ayah, surah_name, arabic_text, translation, transliteration, themes, keywords, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
	ON CONFLICT (surah, ayah) DO UPDATE SET
		surah_name      = EXCLUDED.surah_name,
		arabic_text     = EXCLUDED.arabic_text,
		translation     = EXCLUDED.translation,
		transliteration = EXCLUDED.transliteration,
		themes          = EXCLUDED.themes,
		keywords        = EXCLUDED.keywords
	RETURNING id;
	`
	var id int
	err := DB.QueryRow(query, v.Surah, v.Ayah, v.SurahName, v.ArabicText,
		v.Translation, v.Transliteration, pq.Array([]string(v.Themes)), pq.Array([]string(v.Keywords))).Scan(&id)
	if err != nil {
		log.Error().Err(err).Int("surah", v.Surah).Int("ayah", v.Ayah).Msg("failed to upsert verse")
		return 0, err
	}
	return id, nil
}

// loads the whole corpus in (surah, ayah) order.
func ListAllVerses() ([]model.Verse, error) {
	var out []model.Verse
	query := `
	SELECT id, surah, ayah, surah_name, arabic_text, translation, transliteration, themes, keywords, created_at
	FROM verses
	ORDER BY surah, ayah;
	`
	if err := DB.Select(&out, query); err != nil {
		log.Error().Err(err).Msg("failed to list verses")
		return nil, err
	}
	return out, nil
}

// lists the verses of one surah in ayah order.
func ListVersesBySurah(surah int) ([]model.Verse, error) {
	var out []model.Verse
	query := `
	SELECT id, surah, ayah, surah_name, arabic_text, translation, transliteration, themes, keywords, created_at
	FROM verses
	WHERE surah = $1
	ORDER BY ayah;
	`
	if err := DB.Select(&out, query); err != nil {
		log.Error().Err(err).Int("surah", surah).Msg("failed to list verses by surah")
		return nil, err
	}
	return out, nil
}

// fetches one verse by reference.
func GetVerse(surah, ayah int) (*model.Verse, error) {
	var v model.Verse
	query := `
	SELECT id, surah, ayah, surah_name, arabic_text, translation, transliteration, themes, keywords, created_at
	FROM verses
	WHERE surah = $1 AND ayah = $2;
	`
	err := DB.Get(&v, query, surah, ayah)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Int("surah", surah).Int("ayah", ayah).Msg("failed to get verse")
		return nil, err
	}
	return &v, nil
}

// fetches one verse by primary key.
func GetVerseByID(id int) (*model.Verse, error) {
	var v model.Verse
	query := `
	SELECT id, surah, ayah, surah_name, arabic_text, translation, transliteration, themes, keywords, created_at
	FROM verses
	WHERE id = $1;
	`
	err := DB.Get(&v, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Int("verse_id", id).Msg("failed to get verse by id")
		return nil, err
	}
	return &v, nil
}
