package prayer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAladhanClientParsesTimings(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"code":200,"data":{"timings":{
			"Fajr":"05:12 (EET)","Sunrise":"06:38","Dhuhr":"12:04","Asr":"15:22",
			"Maghrib":"17:31","Isha":"18:49","Midnight":"00:04"}}}`)
	}))
	defer srv.Close()

	c := NewAladhanClient(srv.URL)
	day, err := c.DayTimes(context.Background(),
		time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
		Location{Latitude: 30.0444, Longitude: 31.2357, TzOffsetMin: 120},
		Params{Method: "egypt"})
	require.NoError(t, err)

	assert.Equal(t, "/v1/timings/11-03-2024", gotPath)
	assert.Contains(t, gotQuery, "method=5")
	assert.Contains(t, gotQuery, "school=0")

	assert.Equal(t, "05:12", day.Fajr, "timezone suffix stripped")
	assert.Equal(t, "18:49", day.Isha)
	assert.Equal(t, "2024-03-11", day.Date)
	assert.Equal(t, "1 Ramadan 1445 AH", day.Hijri)
	assert.Equal(t, "egypt", day.Method)
}

func TestAladhanClientHanafiSchool(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `{"code":200,"data":{"timings":{}}}`)
	}))
	defer srv.Close()

	_, err := NewAladhanClient(srv.URL).DayTimes(context.Background(),
		time.Now(), Location{}, Params{Method: "karachi", School: "hanafi"})
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "method=1")
	assert.Contains(t, gotQuery, "school=1")
}

func TestAladhanClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewAladhanClient(srv.URL)
	_, err := c.DayTimes(context.Background(), time.Now(), Location{}, Params{Method: "mwl"})
	assert.ErrorContains(t, err, "status 502")

	_, err = c.DayTimes(context.Background(), time.Now(), Location{}, Params{Method: "customangles"})
	assert.ErrorContains(t, err, "not supported")
}

func TestNewProviderSelection(t *testing.T) {
	assert.IsType(t, &AladhanClient{}, NewProvider("aladhan", "https://api.aladhan.com"))
	assert.IsType(t, LocalProvider{}, NewProvider("local", ""))
	assert.IsType(t, LocalProvider{}, NewProvider("", ""))
}
