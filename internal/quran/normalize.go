package quran

import "strings"

// typoTable maps frequent misspellings seen in search logs to their
// corrected token. Applied per token after lowercasing, so correction
// is idempotent: corrected tokens are never keys.
var typoTable = map[string]string{
	"quaran":      "quran",
	"koran":       "quran",
	"prayar":      "prayer",
	"prayr":       "prayer",
	"salat":       "salah",
	"salaat":      "salah",
	"merci":       "mercy",
	"mercey":      "mercy",
	"pateince":    "patience",
	"patiance":    "patience",
	"forgivness":  "forgiveness",
	"forgivenes":  "forgiveness",
	"paradice":    "paradise",
	"gidance":     "guidance",
	"guidence":    "guidance",
	"rammadan":    "ramadan",
	"ramadhan":    "ramadan",
	"muhammed":    "muhammad",
	"mohammed":    "muhammad",
	"mohammad":    "muhammad",
	"zakkat":      "zakat",
	"fatihah":     "fatiha",
	"fateha":      "fatiha",
	"ikhlaas":     "ikhlas",
	"kursee":      "kursi",
	"kursy":       "kursi",
	"thankfull":   "thankful",
	"gratefull":   "grateful",
	"charety":     "charity",
	"beleive":     "believe",
	"beleivers":   "believers",
	"rightous":    "righteous",
	"rigtheous":   "righteous",
	"stedfast":    "steadfast",
	"supplicaton": "supplication",
}

// synonyms expands a corrected token into related search terms. The
// expansion set is bounded by maxExpandedTerms at query time.
var synonyms = map[string][]string{
	"mercy":       {"compassion", "merciful", "rahmah"},
	"patience":    {"sabr", "patient", "steadfast", "persevere"},
	"guidance":    {"guide", "huda", "straight path"},
	"forgiveness": {"forgive", "pardon", "repent"},
	"charity":     {"zakat", "sadaqah", "alms", "spend"},
	"prayer":      {"salah", "worship", "prostrate"},
	"fasting":     {"sawm", "fast", "ramadan"},
	"paradise":    {"jannah", "garden", "heaven"},
	"hellfire":    {"jahannam", "fire", "punishment"},
	"god":         {"allah", "lord", "creator"},
	"allah":       {"god", "lord"},
	"light":       {"nur", "lamp"},
	"heart":       {"hearts", "qalb"},
	"ease":        {"hardship", "relief"},
	"gratitude":   {"grateful", "thankful", "shukr"},
	"knowledge":   {"ilm", "wisdom", "learn"},
	"death":       {"soul", "return", "hereafter"},
	"trust":       {"tawakkul", "rely"},
}

const maxExpandedTerms = 12

// Normalize lowercases, trims and collapses whitespace, then corrects
// each token through the typo table. Idempotent on corrected input.
func Normalize(query string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	for i, f := range fields {
		if fixed, ok := typoTable[f]; ok {
			fields[i] = fixed
		}
	}
	return strings.Join(fields, " ")
}

// Terms splits a normalized query into tokens.
func Terms(normalized string) []string {
	return strings.Fields(normalized)
}

// Expand returns the query terms plus their synonyms, deduplicated and
// capped at maxExpandedTerms. Original terms always survive the cap.
func Expand(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, t := range terms {
		for _, syn := range synonyms[t] {
			if len(out) >= maxExpandedTerms {
				return out
			}
			if !seen[syn] {
				seen[syn] = true
				out = append(out, syn)
			}
		}
	}
	return out
}

// synonymsOnly returns the expanded terms that are not original query
// terms. Expand dedups, so positions past len(terms) cannot be trusted.
func synonymsOnly(terms, expanded []string) []string {
	original := make(map[string]bool, len(terms))
	for _, t := range terms {
		original[t] = true
	}
	var out []string
	for _, t := range expanded {
		if !original[t] {
			out = append(out, t)
		}
	}
	return out
}
