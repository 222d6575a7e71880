package model

import (
	"strconv"
	"time"

	"github.com/lib/pq"
)

// Verse is one ayah of the searchable corpus.
type Verse struct {
	ID              int            `db:"id"              json:"id"`
	Surah           int            `db:"surah"           json:"surah"`
	Ayah            int            `db:"ayah"            json:"ayah"`
	SurahName       string         `db:"surah_name"      json:"surah_name"`
	ArabicText      string         `db:"arabic_text"     json:"arabic_text"`
	Translation     string         `db:"translation"     json:"translation"`
	Transliteration string         `db:"transliteration" json:"transliteration"`
	Themes          pq.StringArray `db:"themes"          json:"themes"`
	Keywords        pq.StringArray `db:"keywords"        json:"keywords"`
	CreatedAt       time.Time      `db:"created_at"      json:"-"`
}

// Reference is the canonical "surah:ayah" form used in bookmarks,
// aliases and search results.
func (v Verse) Reference() string {
	return SurahAyahRef(v.Surah, v.Ayah)
}

func SurahAyahRef(surah, ayah int) string {
	return strconv.Itoa(surah) + ":" + strconv.Itoa(ayah)
}

type Bookmark struct {
	ID        int       `db:"id"         json:"id"`
	UserID    int       `db:"user_id"    json:"-"`
	VerseID   int       `db:"verse_id"   json:"verse_id"`
	Note      *string   `db:"note"       json:"note,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	Verse     *Verse    `db:"-"          json:"verse,omitempty"`
}
