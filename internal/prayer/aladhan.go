package prayer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/deenbuddy/minaret/internal/hijri"
	"github.com/deenbuddy/minaret/internal/model"
)

// AladhanClient fetches timings from the AlAdhan REST API instead of
// computing them locally.
type AladhanClient struct {
	BaseURL string
	HTTP    *http.Client
}

func NewAladhanClient(baseURL string) *AladhanClient {
	return &AladhanClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// AlAdhan's numeric identifiers for the methods we expose.
var aladhanMethods = map[string]int{
	"jafari":  0,
	"karachi": 1,
	"isna":    2,
	"mwl":     3,
	"makkah":  4,
	"egypt":   5,
	"tehran":  7,
}

func (c *AladhanClient) DayTimes(ctx context.Context, date time.Time, loc Location, p Params) (model.DayTimes, error) {
	method := strings.ToLower(strings.TrimSpace(p.Method))
	methodNum, ok := aladhanMethods[method]
	if !ok {
		return model.DayTimes{}, fmt.Errorf("method %q not supported by aladhan", p.Method)
	}
	school := p.School
	if school == "" {
		school = SchoolShafi
	}
	schoolNum := 0
	if school == SchoolHanafi {
		schoolNum = 1
	}

	url := fmt.Sprintf("%s/v1/timings/%s?latitude=%f&longitude=%f&method=%d&school=%d",
		c.BaseURL, date.Format("02-01-2006"),
		loc.Latitude, loc.Longitude, methodNum, schoolNum)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return model.DayTimes{}, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return model.DayTimes{}, fmt.Errorf("aladhan request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.DayTimes{}, fmt.Errorf("aladhan returned status %d", resp.StatusCode)
	}

	var payload struct {
		Code int `json:"code"`
		Data struct {
			Timings map[string]string `json:"timings"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.DayTimes{}, fmt.Errorf("aladhan response: %w", err)
	}
	if payload.Code != http.StatusOK {
		return model.DayTimes{}, fmt.Errorf("aladhan returned code %d", payload.Code)
	}

	get := func(key string) string { return cleanTiming(payload.Data.Timings[key]) }
	return model.DayTimes{
		Date:     date.Format(time.DateOnly),
		Hijri:    hijri.Format(hijri.FromTime(date)),
		Fajr:     get("Fajr"),
		Sunrise:  get("Sunrise"),
		Dhuhr:    get("Dhuhr"),
		Asr:      get("Asr"),
		Maghrib:  get("Maghrib"),
		Isha:     get("Isha"),
		Midnight: get("Midnight"),
		Method:   method,
		School:   school,
	}, nil
}

// cleanTiming strips the timezone suffix aladhan appends, "05:12 (EET)".
func cleanTiming(v string) string {
	if i := strings.IndexByte(v, ' '); i >= 0 {
		return v[:i]
	}
	return v
}
