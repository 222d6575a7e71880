package prayer

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	equator   = Location{Latitude: 0, Longitude: 0, TzOffsetMin: 0}
	stockholm = Location{Latitude: 59.3293, Longitude: 18.0686, TzOffsetMin: 120}
	tromso    = Location{Latitude: 69.6492, Longitude: 18.9553, TzOffsetMin: 60}
	equinox   = time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	solstice  = time.Date(2024, time.June, 21, 0, 0, 0, 0, time.UTC)
)

func mustCompute(t *testing.T, date time.Time, loc Location, p Params) Times {
	t.Helper()
	times, err := ComputeDay(date, loc, p)
	require.NoError(t, err)
	return times
}

func TestEquatorEquinox(t *testing.T) {
	times := mustCompute(t, equinox, equator, Params{Method: "mwl", School: "shafi"})

	assert.InDelta(t, 12.12, times.Dhuhr, 0.3)
	assert.InDelta(t, 6.0, times.Sunrise, 0.5)
	assert.InDelta(t, 18.1, times.Sunset, 0.5)

	assert.Less(t, times.Fajr, times.Sunrise)
	assert.Less(t, times.Sunrise, times.Dhuhr)
	assert.Less(t, times.Dhuhr, times.Asr)
	assert.Less(t, times.Asr, times.Maghrib)
	assert.Less(t, times.Maghrib, times.Isha)

	// MWL maghrib is sunset.
	assert.InDelta(t, times.Sunset, times.Maghrib, 1e-9)
}

func TestHanafiAsrLater(t *testing.T) {
	shafi := mustCompute(t, equinox, equator, Params{Method: "mwl", School: "shafi"})
	hanafi := mustCompute(t, equinox, equator, Params{Method: "mwl", School: "hanafi"})
	assert.Greater(t, hanafi.Asr, shafi.Asr+0.5)

	// All other times are unaffected by the school.
	assert.InDelta(t, shafi.Fajr, hanafi.Fajr, 1e-9)
	assert.InDelta(t, shafi.Maghrib, hanafi.Maghrib, 1e-9)
}

func TestMakkahIshaOffset(t *testing.T) {
	cairo := Location{Latitude: 30.0444, Longitude: 31.2357, TzOffsetMin: 120}
	times := mustCompute(t, equinox, cairo, Params{Method: "makkah"})
	assert.InDelta(t, 1.5, times.Isha-times.Maghrib, 1e-9)
}

func TestAngleBasedMaghribAfterSunset(t *testing.T) {
	tehran := Location{Latitude: 35.6892, Longitude: 51.389, TzOffsetMin: 210}
	times := mustCompute(t, equinox, tehran, Params{Method: "tehran"})
	assert.Greater(t, times.Maghrib, times.Sunset)
}

func TestJafariMidnightEarlier(t *testing.T) {
	standard := mustCompute(t, equinox, equator, Params{Method: "mwl"})
	jafari := mustCompute(t, equinox, equator, Params{Method: "jafari"})
	assert.Less(t, jafari.Midnight, standard.Midnight)
	assert.Greater(t, standard.Midnight, standard.Sunset)
}

func TestHighLatitudeSummerTwilight(t *testing.T) {
	// At 59N on the June solstice the sun never reaches 18 degrees below
	// the horizon, so fajr and isha are undefined without a rule.
	raw := mustCompute(t, solstice, stockholm, Params{Method: "mwl", HighLatRule: HighLatNone})
	assert.True(t, math.IsNaN(raw.Fajr))
	assert.True(t, math.IsNaN(raw.Isha))
	require.False(t, math.IsNaN(raw.Sunrise))
	require.False(t, math.IsNaN(raw.Sunset))
	assert.InDelta(t, 3.5, raw.Sunrise, 1.0)
	assert.InDelta(t, 22.1, raw.Sunset, 1.0)

	night := timeDiff(raw.Sunset, raw.Sunrise)

	mid := mustCompute(t, solstice, stockholm, Params{Method: "mwl", HighLatRule: HighLatMidnight})
	assert.InDelta(t, raw.Sunrise-night/2, mid.Fajr, 1e-6)
	assert.InDelta(t, raw.Sunset+night/2, mid.Isha, 1e-6)

	seventh := mustCompute(t, solstice, stockholm, Params{Method: "mwl", HighLatRule: HighLatOneSeventh})
	assert.InDelta(t, raw.Sunrise-night/7, seventh.Fajr, 1e-6)
	assert.InDelta(t, raw.Sunset+night/7, seventh.Isha, 1e-6)

	angle := mustCompute(t, solstice, stockholm, Params{Method: "mwl", HighLatRule: HighLatAngle})
	assert.InDelta(t, raw.Sunrise-night*18/60, angle.Fajr, 1e-6)
	assert.InDelta(t, raw.Sunset+night*17/60, angle.Isha, 1e-6)
}

func TestPolarNight(t *testing.T) {
	// Tromso on Jan 1: the sun stays below the horizon all day, so
	// sunrise, sunset and maghrib are undefined, but noon still exists
	// and the sun does pass the twilight angles.
	times := mustCompute(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), tromso, Params{Method: "mwl"})
	assert.True(t, math.IsNaN(times.Sunrise))
	assert.True(t, math.IsNaN(times.Sunset))
	assert.True(t, math.IsNaN(times.Maghrib))
	assert.False(t, math.IsNaN(times.Dhuhr))
	assert.False(t, math.IsNaN(times.Fajr))
	assert.False(t, math.IsNaN(times.Isha))
}

func TestComputeDayDeterministic(t *testing.T) {
	p := Params{Method: "isna", School: "hanafi", HighLatRule: HighLatMidnight}
	a := mustCompute(t, equinox, stockholm, p)
	b := mustCompute(t, equinox, stockholm, p)
	assert.Equal(t, a, b)
}

func TestComputeDayRejectsUnknownParams(t *testing.T) {
	_, err := ComputeDay(equinox, equator, Params{Method: "nope"})
	assert.Error(t, err)
	_, err = ComputeDay(equinox, equator, Params{Method: "mwl", School: "maliki"})
	assert.Error(t, err)
	_, err = ComputeDay(equinox, equator, Params{Method: "mwl", HighLatRule: "clamp"})
	assert.Error(t, err)
}

func TestMethodRegistry(t *testing.T) {
	m, err := MethodByName(" MWL ")
	require.NoError(t, err)
	assert.Equal(t, 18.0, m.FajrAngle)

	all := Methods()
	assert.Len(t, all, 7)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Name, all[i].Name)
	}
}

func TestFormatHHMM(t *testing.T) {
	assert.Equal(t, "", FormatHHMM(math.NaN()))
	assert.Equal(t, "05:30", FormatHHMM(5.5))
	assert.Equal(t, "12:00", FormatHHMM(12))
	assert.Equal(t, "23:30", FormatHHMM(-0.5))
	assert.Equal(t, "00:00", FormatHHMM(23.9999))
}

func TestBuildDayTimes(t *testing.T) {
	london := Location{Latitude: 51.5074, Longitude: -0.1278, TzOffsetMin: 60}
	day, err := BuildDayTimes(time.Date(2026, time.August, 23, 0, 0, 0, 0, time.UTC), london, Params{Method: "MWL"})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-23", day.Date)
	assert.Equal(t, "9 Rabi' al-Awwal 1448 AH", day.Hijri)
	assert.Equal(t, "mwl", day.Method)
	assert.Equal(t, "shafi", day.School)
	assert.Regexp(t, `^\d{2}:\d{2}$`, day.Fajr)
	assert.Regexp(t, `^\d{2}:\d{2}$`, day.Isha)
}

func TestBuildRange(t *testing.T) {
	days, err := BuildRange(equinox, 7, equator, Params{Method: "mwl"})
	require.NoError(t, err)
	require.Len(t, days, 7)
	assert.Equal(t, "2024-03-20", days[0].Date)
	assert.Equal(t, "2024-03-26", days[6].Date)
}

func TestCacheKeyParams(t *testing.T) {
	loc := Location{Latitude: 51.5074, Longitude: -0.1278, TzOffsetMin: 60}
	shafi := CacheKey(equinox, loc, Params{Method: "mwl", School: "shafi"})
	hanafi := CacheKey(equinox, loc, Params{Method: "mwl", School: "hanafi"})
	assert.NotEqual(t, shafi, hanafi)
	assert.Equal(t, shafi, CacheKey(equinox, Location{Latitude: 51.50740001, Longitude: -0.1278, TzOffsetMin: 60}, Params{Method: "mwl", School: "shafi"}))
}

func TestHighLatRuleCaseInsensitive(t *testing.T) {
	lower := mustCompute(t, solstice, stockholm, Params{Method: "mwl", HighLatRule: "midnight"})
	upper := mustCompute(t, solstice, stockholm, Params{Method: "mwl", HighLatRule: "MIDNIGHT"})
	assert.InDelta(t, lower.Fajr, upper.Fajr, 1e-9)
	assert.InDelta(t, lower.Isha, upper.Isha, 1e-9)

	_, err := ComputeDay(solstice, stockholm, Params{Method: "mwl", HighLatRule: "sideways"})
	assert.Error(t, err)
}

func TestNormalizeHighLatRule(t *testing.T) {
	for in, want := range map[string]string{
		"":            HighLatMidnight,
		"midnight":    HighLatMidnight,
		" MIDNIGHT ":  HighLatMidnight,
		"One_Seventh": HighLatOneSeventh,
		"NONE":        HighLatNone,
	} {
		got, err := NormalizeHighLatRule(in)
		require.NoError(t, err, "rule %q", in)
		assert.Equal(t, want, got, "rule %q", in)
	}
	_, err := NormalizeHighLatRule("sideways")
	assert.Error(t, err)
}
