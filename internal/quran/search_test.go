package quran

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deenbuddy/minaret/internal/model"
)

func testCorpus() *Corpus {
	c := NewCorpus()
	c.Replace([]model.Verse{
		{
			ID: 1, Surah: 1, Ayah: 1, SurahName: "Al-Fatiha",
			ArabicText:      "بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ",
			Translation:     "In the name of Allah, the Entirely Merciful, the Especially Merciful.",
			Transliteration: "Bismillahi r-rahmani r-rahim",
			Themes:          []string{"mercy", "opening"},
			Keywords:        []string{"bismillah"},
		},
		{
			ID: 2, Surah: 2, Ayah: 153, SurahName: "Al-Baqarah",
			ArabicText:      "يَا أَيُّهَا الَّذِينَ آمَنُوا اسْتَعِينُوا بِالصَّبْرِ وَالصَّلَاةِ",
			Translation:     "O you who have believed, seek help through patience and prayer.",
			Transliteration: "Ya ayyuha alladhina amanu ista'inu bis-sabri was-salah",
			Themes:          []string{"patience", "prayer"},
			Keywords:        []string{"sabr", "salah"},
		},
		{
			ID: 3, Surah: 2, Ayah: 255, SurahName: "Al-Baqarah",
			ArabicText:      "اللَّهُ لَا إِلَٰهَ إِلَّا هُوَ الْحَيُّ الْقَيُّومُ",
			Translation:     "Allah - there is no deity except Him, the Ever-Living, the Sustainer of existence.",
			Transliteration: "Allahu la ilaha illa huwa al-hayyu al-qayyum",
			Themes:          []string{"tawhid", "protection"},
			Keywords:        []string{"kursi", "throne"},
		},
		{
			ID: 4, Surah: 94, Ayah: 5, SurahName: "Ash-Sharh",
			ArabicText:      "فَإِنَّ مَعَ الْعُسْرِ يُسْرًا",
			Translation:     "For indeed, with hardship will be ease.",
			Transliteration: "Fa-inna ma'a al-'usri yusra",
			Themes:          []string{"hope", "ease"},
			Keywords:        []string{"hardship", "ease"},
		},
		{
			ID: 5, Surah: 103, Ayah: 2, SurahName: "Al-Asr",
			ArabicText:      "إِنَّ الْإِنسَانَ لَفِي خُسْرٍ",
			Translation:     "Indeed, mankind is in loss, except those who believe and advise each other to patience.",
			Transliteration: "Inna al-insana lafi khusr",
			Themes:          []string{"time", "patience"},
			Keywords:        []string{"loss"},
		},
	})
	return c
}

func TestNormalizeIdempotent(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"  Patience  ", "patience"},
		{"PATEINCE", "patience"},
		{"Merci and Forgivness", "mercy and forgiveness"},
		{"ramadhan", "ramadan"},
		{"already correct query", "already correct query"},
	}
	for _, tc := range cases {
		got := Normalize(tc.in)
		assert.Equal(t, tc.want, got, "Normalize(%q)", tc.in)
		assert.Equal(t, got, Normalize(got), "Normalize must be idempotent")
	}
}

func TestExpandBounded(t *testing.T) {
	terms := []string{"mercy", "patience", "guidance", "charity", "prayer"}
	expanded := Expand(terms)
	assert.LessOrEqual(t, len(expanded), maxExpandedTerms)
	// original terms always survive the cap
	for _, term := range terms {
		assert.Contains(t, expanded, term)
	}
}

func TestAliasLookupCaseInsensitive(t *testing.T) {
	for _, q := range []string{"Ayatul Kursi", "AYATUL KURSI", "ayatul kursi"} {
		ref, ok := LookupAlias(Normalize(q))
		require.True(t, ok, "alias for %q", q)
		assert.Equal(t, "2:255", ref)
	}
}

func TestSearchAliasRanksFirst(t *testing.T) {
	c := testCorpus()
	results := c.Search("ayatul kursi", 10)
	require.NotEmpty(t, results)
	assert.Equal(t, 2, results[0].Verse.Surah)
	assert.Equal(t, 255, results[0].Verse.Ayah)
	assert.Equal(t, scoreAlias, results[0].Score)
}

func TestSearchExactPhraseOutranksTermMatches(t *testing.T) {
	c := testCorpus()
	results := c.Search("patience and prayer", 10)
	require.NotEmpty(t, results)
	// 2:153 contains the exact phrase; 103:2 only matches "patience"
	assert.Equal(t, 153, results[0].Verse.Ayah)
	for _, r := range results[1:] {
		assert.Less(t, r.Score, results[0].Score)
	}
}

func TestSearchTypoCorrected(t *testing.T) {
	c := testCorpus()
	results := c.Search("pateince", 10)
	require.NotEmpty(t, results)
	refs := make([]string, 0, len(results))
	for _, r := range results {
		refs = append(refs, r.Verse.Reference())
	}
	assert.Contains(t, refs, "2:153")
}

func TestSearchRepeatedTermKeepsSynonyms(t *testing.T) {
	c := NewCorpus()
	c.Replace([]model.Verse{
		{
			ID: 1, Surah: 21, Ayah: 107, SurahName: "Al-Anbya",
			ArabicText:      "وَمَا أَرْسَلْنَاكَ إِلَّا رَحْمَةً لِّلْعَالَمِينَ",
			Translation:     "And We have not sent you except as compassion to the worlds.",
			Transliteration: "Wa ma arsalnaka illa rahmatan lil-'alamin",
		},
	})

	// A duplicated term dedups during expansion; the verse only matches
	// through the "mercy" synonym "compassion" and must still be found.
	results := c.Search("mercy mercy", 10)
	require.NotEmpty(t, results)
	assert.Equal(t, 107, results[0].Verse.Ayah)

	single := c.Search("mercy", 10)
	require.NotEmpty(t, single)
	assert.Equal(t, single[0].Score, results[0].Score)
}

func TestSynonymsOnly(t *testing.T) {
	terms := []string{"mercy", "compassion"}
	extras := synonymsOnly(terms, Expand(terms))
	assert.NotContains(t, extras, "mercy")
	assert.NotContains(t, extras, "compassion")
	assert.Contains(t, extras, "merciful")
}

func TestSearchArabicSubstring(t *testing.T) {
	c := testCorpus()
	results := c.Search("الْعُسْرِ", 10)
	require.NotEmpty(t, results)
	assert.Equal(t, 94, results[0].Verse.Surah)
}

func TestSearchDeterministicTieBreak(t *testing.T) {
	c := testCorpus()
	// "patience" matches 2:153 and 103:2 through different fields; the
	// ordering must be stable across runs
	first := c.Search("patience", 10)
	for i := 0; i < 5; i++ {
		again := c.Search("patience", 10)
		require.Equal(t, len(first), len(again))
		for j := range first {
			assert.Equal(t, first[j].Verse.ID, again[j].Verse.ID)
		}
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	c := testCorpus()
	assert.Nil(t, c.Search("", 10))
	assert.Nil(t, c.Search("   ", 10))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, defaultLimit, ClampLimit(0))
	assert.Equal(t, defaultLimit, ClampLimit(-3))
	assert.Equal(t, 1, ClampLimit(1))
	assert.Equal(t, maxLimit, ClampLimit(500))
}

func TestSearchLimitApplied(t *testing.T) {
	c := testCorpus()
	results := c.Search("allah", 1)
	assert.LessOrEqual(t, len(results), 1)
}

func TestCorpusSurahs(t *testing.T) {
	c := testCorpus()
	surahs := c.Surahs()
	require.Len(t, surahs, 4)
	assert.Equal(t, 1, surahs[0].Number)
	assert.Equal(t, 2, surahs[1].Number)
	assert.Equal(t, 2, surahs[1].VerseCount)

	verse, ok := c.ByReference(2, 255)
	require.True(t, ok)
	assert.Equal(t, "2:255", verse.Reference())
}
