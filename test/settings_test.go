package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deenbuddy/minaret/internal/db"
)

func putJSON(router http.Handler, path, token string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

// Uppercase rule names must be stored canonically and still resolve when
// the timetable endpoint reads them back from settings.
func TestSettingsHighLatRuleStoredCanonically(t *testing.T) {
	requireDB(t)
	router := setupRouter(db.TestStore)

	email := fmt.Sprintf("settings-%d@example.com", time.Now().UnixNano())
	w := postJSON(router, "/api/app/auth/signup", "", map[string]any{
		"email":    email,
		"password": "12345678",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var signupResp map[string]string
	json.Unmarshal(w.Body.Bytes(), &signupResp)
	token := signupResp["token"]
	require.NotEmpty(t, token)

	w = putJSON(router, "/api/app/settings", token, map[string]any{
		"high_lat_rule": "MIDNIGHT",
		"latitude":      59.3293,
		"longitude":     18.0686,
		"tz_offset_min": 120,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var settings map[string]any
	json.Unmarshal(w.Body.Bytes(), &settings)
	assert.Equal(t, "midnight", settings["high_lat_rule"])

	// the saved rule feeds straight into the timetable computation
	w = getJSON(router, "/api/app/prayer-times", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var day map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &day))
	assert.NotEmpty(t, day["fajr"])
}

func TestSettingsRejectsUnknownHighLatRule(t *testing.T) {
	requireDB(t)
	router := setupRouter(db.TestStore)

	email := fmt.Sprintf("settings-bad-%d@example.com", time.Now().UnixNano())
	w := postJSON(router, "/api/app/auth/signup", "", map[string]any{
		"email":    email,
		"password": "12345678",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var signupResp map[string]string
	json.Unmarshal(w.Body.Bytes(), &signupResp)

	w = putJSON(router, "/api/app/settings", signupResp["token"], map[string]any{
		"high_lat_rule": "sideways",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
