package quran

import "github.com/deenbuddy/minaret/internal/model"

// famousVerses maps well-known verse names to their reference. Keys are
// normalized (lowercase, typo-corrected) so lookup happens after
// Normalize and stays idempotent.
var famousVerses = map[string]string{
	"ayatul kursi":    "2:255",
	"ayat al kursi":   "2:255",
	"ayat ul kursi":   "2:255",
	"throne verse":    "2:255",
	"verse of throne": "2:255",
	"al fatiha":       "1:1",
	"fatiha":          "1:1",
	"the opening":     "1:1",
	"al ikhlas":       "112:1",
	"ikhlas":          "112:1",
	"surah ikhlas":    "112:1",
	"light verse":     "24:35",
	"ayat an nur":     "24:35",
	"verse of light":  "24:35",
	"al asr":          "103:1",
	"surah asr":       "103:1",
}

// LookupAlias resolves a normalized query against the famous-verse
// table. Returns the "surah:ayah" reference on a hit.
func LookupAlias(normalized string) (string, bool) {
	ref, ok := famousVerses[normalized]
	return ref, ok
}

func parseRef(ref string) (surah, ayah int, ok bool) {
	for i := 0; i < len(ref); i++ {
		if ref[i] == ':' {
			s, a := ref[:i], ref[i+1:]
			surah, ayah = atoi(s), atoi(a)
			return surah, ayah, surah > 0 && ayah > 0
		}
	}
	return 0, 0, false
}

func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0
		}
		n = n*10 + int(s[i]-'0')
	}
	return n
}

// aliasVerse resolves an alias hit against the corpus.
func (c *Corpus) aliasVerse(normalized string) (model.Verse, bool) {
	ref, ok := LookupAlias(normalized)
	if !ok {
		return model.Verse{}, false
	}
	surah, ayah, ok := parseRef(ref)
	if !ok {
		return model.Verse{}, false
	}
	return c.ByReference(surah, ayah)
}
