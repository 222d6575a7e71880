package test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deenbuddy/minaret/internal/db"
	"github.com/deenbuddy/minaret/internal/model"
)

type convertResponse struct {
	Gregorian string          `json:"gregorian"`
	Hijri     model.HijriDate `json:"hijri"`
	Formatted string          `json:"formatted"`
}

// 29-day Hijri months must convert even when the same numbers are not a
// valid Gregorian date (1447 has no Feb 29).
func TestConvertAcceptsTabularHijriDates(t *testing.T) {
	router := setupRouter(db.TestStore)

	w := getJSON(router, "/api/app/calendar/convert?hijri=1447-2-29", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp convertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1447, resp.Hijri.Year)
	assert.Equal(t, 2, resp.Hijri.Month)
	assert.Equal(t, 29, resp.Hijri.Day)
	assert.NotEmpty(t, resp.Gregorian)
}

func TestConvertRejectsInvalidHijriDates(t *testing.T) {
	router := setupRouter(db.TestStore)

	for _, q := range []string{
		"1447-2-30",  // Safar 1447 has 29 days
		"1447-13-1",  // month out of range
		"1447-0-10",  // month out of range
		"not-a-date", // unparsable
		"1447-2",     // wrong arity
	} {
		w := getJSON(router, "/api/app/calendar/convert?hijri="+q, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "query %q", q)
	}
}

func TestConvertGregorianRoundTrip(t *testing.T) {
	router := setupRouter(db.TestStore)

	w := getJSON(router, "/api/app/calendar/convert?date=2026-08-23", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp convertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2026-08-23", resp.Gregorian)
	assert.Equal(t, 1448, resp.Hijri.Year)
	assert.Equal(t, "9 Rabi' al-Awwal 1448 AH", resp.Formatted)
}
