package db

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/deenbuddy/minaret/internal/model"
)

// ErrDuplicateBookmark is returned when a user bookmarks the same verse twice.
var ErrDuplicateBookmark = errors.New("verse already bookmarked")

// inserts a bookmark, enforcing one per verse per user.
func CreateBookmark(userID, verseID int, note *string) (int, error) {
	query := `
	INSERT INTO bookmarks (user_id, verse_id, note, created_at)
	VALUES ($1, $2, $3, now())
	RETURNING id;
	`
	var id int
	err := DB.QueryRow(query, userID, verseID, note).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, ErrDuplicateBookmark
		}
		log.Error().Err(err).Int("user_id", userID).Int("verse_id", verseID).Msg("failed to create bookmark")
		return 0, err
	}
	return id, nil
}

// lists a user's bookmarks newest first, verse joined in.
func ListBookmarks(userID int) ([]model.Bookmark, error) {
	rows, err := DB.Queryx(`
	SELECT b.id, b.user_id, b.verse_id, b.note, b.created_at,
	       v.id AS v_id, v.surah, v.ayah, v.surah_name, v.arabic_text,
	       v.translation, v.transliteration, v.themes, v.keywords, v.created_at AS v_created_at
	FROM bookmarks b
	JOIN verses v ON v.id = b.verse_id
	WHERE b.user_id = $1
	ORDER BY b.created_at DESC;
	`, userID)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("failed to list bookmarks")
		return nil, err
	}
	defer rows.Close()

	var out []model.Bookmark
	for rows.Next() {
		var b model.Bookmark
		var v model.Verse
		if err := rows.Scan(&b.ID, &b.UserID, &b.VerseID, &b.Note, &b.CreatedAt,
			&v.ID, &v.Surah, &v.Ayah, &v.SurahName, &v.ArabicText,
			&v.Translation, &v.Transliteration, &v.Themes, &v.Keywords, &v.CreatedAt); err != nil {
			return nil, err
		}
		b.Verse = &v
		out = append(out, b)
	}
	return out, rows.Err()
}

// deletes one of the user's bookmarks. returns sql.ErrNoRows if the
// bookmark doesn't exist or belongs to someone else.
func DeleteBookmark(userID, bookmarkID int) error {
	res, err := DB.Exec(`DELETE FROM bookmarks WHERE id = $1 AND user_id = $2;`, bookmarkID, userID)
	if err != nil {
		log.Error().Err(err).Int("bookmark_id", bookmarkID).Msg("failed to delete bookmark")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
