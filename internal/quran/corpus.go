// Package quran holds the in-memory verse corpus and the search
// pipeline over it: typo correction, synonym expansion, famous-verse
// aliases and additive relevance scoring.
package quran

import (
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/deenbuddy/minaret/internal/model"
)

// SurahInfo summarizes one surah of the loaded corpus.
type SurahInfo struct {
	Number     int    `json:"number"`
	Name       string `json:"name"`
	VerseCount int    `json:"verse_count"`
}

// Corpus is the searchable verse set. The slice is replaced wholesale on
// reload; readers take the lock only long enough to grab the snapshot.
type Corpus struct {
	mu     sync.RWMutex
	verses []model.Verse
	byRef  map[string]model.Verse
}

func NewCorpus() *Corpus {
	return &Corpus{byRef: make(map[string]model.Verse)}
}

// Replace swaps in a new verse set, ordered by (surah, ayah).
func (c *Corpus) Replace(verses []model.Verse) {
	sorted := make([]model.Verse, len(verses))
	copy(sorted, verses)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Surah != sorted[j].Surah {
			return sorted[i].Surah < sorted[j].Surah
		}
		return sorted[i].Ayah < sorted[j].Ayah
	})

	byRef := make(map[string]model.Verse, len(sorted))
	for _, v := range sorted {
		byRef[v.Reference()] = v
	}

	c.mu.Lock()
	c.verses = sorted
	c.byRef = byRef
	c.mu.Unlock()

	log.Info().Int("verses", len(sorted)).Msg("quran corpus loaded")
}

// Len reports the number of loaded verses.
func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.verses)
}

func (c *Corpus) snapshot() []model.Verse {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.verses
}

// ByReference looks up a verse by its "surah:ayah" reference.
func (c *Corpus) ByReference(surah, ayah int) (model.Verse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.byRef[model.SurahAyahRef(surah, ayah)]
	return v, ok
}

// Surah returns the loaded verses of one surah in ayah order.
func (c *Corpus) Surah(number int) []model.Verse {
	var out []model.Verse
	for _, v := range c.snapshot() {
		if v.Surah == number {
			out = append(out, v)
		}
	}
	return out
}

// Surahs lists the surahs present in the corpus in numeric order.
func (c *Corpus) Surahs() []SurahInfo {
	var out []SurahInfo
	for _, v := range c.snapshot() {
		if n := len(out); n > 0 && out[n-1].Number == v.Surah {
			out[n-1].VerseCount++
			continue
		}
		out = append(out, SurahInfo{Number: v.Surah, Name: v.SurahName, VerseCount: 1})
	}
	return out
}
