package quran

import (
	"sort"
	"strings"

	"github.com/deenbuddy/minaret/internal/model"
)

// Result is one ranked search hit.
type Result struct {
	Verse model.Verse `json:"verse"`
	Score int         `json:"score"`
}

// Scoring weights. An exact translation phrase match must outrank any
// combination of the per-term and metadata scores so that ranking stays
// monotonic in exact-substring matches.
const (
	scoreAlias          = 10000
	scorePhrase         = 500
	scoreAllTerms       = 120
	scoreTermTransl     = 20
	scoreTranslitPhrase = 60
	scoreTermTranslit   = 8
	scoreArabic         = 200
	scoreTheme          = 25
	scoreKeyword        = 25
	scoreSynonym        = 6
)

const (
	minLimit     = 1
	maxLimit     = 50
	defaultLimit = 20
)

// ClampLimit forces the result limit into [minLimit, maxLimit],
// substituting defaultLimit for zero or negative values.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// Search runs the full pipeline: normalize, alias lookup, term
// expansion, linear scan with additive scoring, then a deterministic
// sort (score desc, surah asc, ayah asc). An empty normalized query
// returns nil without touching the corpus.
func (c *Corpus) Search(query string, limit int) []Result {
	limit = ClampLimit(limit)

	normalized := Normalize(query)
	if normalized == "" {
		return nil
	}

	terms := Terms(normalized)
	extras := synonymsOnly(terms, Expand(terms))
	raw := strings.TrimSpace(query)

	aliasHit, hasAlias := c.aliasVerse(normalized)

	var results []Result
	for _, v := range c.snapshot() {
		if hasAlias && v.ID == aliasHit.ID {
			continue
		}
		score := scoreVerse(v, normalized, raw, terms, extras)
		if score > 0 {
			results = append(results, Result{Verse: v, Score: score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Verse.Surah != results[j].Verse.Surah {
			return results[i].Verse.Surah < results[j].Verse.Surah
		}
		return results[i].Verse.Ayah < results[j].Verse.Ayah
	})

	if hasAlias {
		results = append([]Result{{Verse: aliasHit, Score: scoreAlias}}, results...)
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

func scoreVerse(v model.Verse, normalized, raw string, terms, extras []string) int {
	score := 0
	translation := strings.ToLower(v.Translation)
	translit := strings.ToLower(v.Transliteration)

	if strings.Contains(translation, normalized) {
		score += scorePhrase
	}

	matched := 0
	for _, t := range terms {
		if strings.Contains(translation, t) {
			matched++
			score += scoreTermTransl
		}
		if strings.Contains(translit, t) {
			score += scoreTermTranslit
		}
	}
	if matched == len(terms) && len(terms) > 1 {
		score += scoreAllTerms
	}

	// single-token transliteration hits already score per term above
	if strings.ContainsRune(normalized, ' ') && strings.Contains(translit, normalized) {
		score += scoreTranslitPhrase
	}

	// arabic queries arrive untouched by Normalize's ascii tables
	if raw != "" && strings.Contains(v.ArabicText, raw) {
		score += scoreArabic
	}

	for _, theme := range v.Themes {
		for _, t := range terms {
			if strings.EqualFold(theme, t) {
				score += scoreTheme
			}
		}
	}
	for _, kw := range v.Keywords {
		for _, t := range terms {
			if strings.EqualFold(kw, t) {
				score += scoreKeyword
			}
		}
	}

	// synonym hits only count beyond the original terms
	for _, t := range extras {
		if strings.Contains(translation, t) {
			score += scoreSynonym
		}
	}

	return score
}
