package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/deenbuddy/minaret/internal/db"
	"github.com/deenbuddy/minaret/internal/http/api"
	"github.com/deenbuddy/minaret/internal/http/api/app/packets"
	"github.com/deenbuddy/minaret/internal/http/middleware"
	"github.com/deenbuddy/minaret/internal/model"
	"github.com/deenbuddy/minaret/internal/prayer"
	"github.com/deenbuddy/minaret/internal/qibla"
	"github.com/deenbuddy/minaret/internal/redis"
)

type PrayerController struct {
	provider  prayer.Provider
	store     db.Store
	jwtSecret string
}

func newPrayerController(provider prayer.Provider, store db.Store, secret string) *PrayerController {
	return &PrayerController{provider: provider, store: store, jwtSecret: secret}
}

// PrayerModule mounts the public timetable endpoints.
func PrayerModule(provider prayer.Provider, store db.Store, secret string) api.Module {
	ctl := newPrayerController(provider, store, secret)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/prayer-times", ctl.getDayTimes)
		c.PUBLIC_GET("/prayer-times/calendar", ctl.getMonthTimes)
		c.PUBLIC_GET("/prayer-times/methods", ctl.listMethods)
	})
}

// timingQuery is the resolved request: query params first, then the
// authed user's saved settings, then service defaults.
type timingQuery struct {
	loc    prayer.Location
	params prayer.Params
}

func (p *PrayerController) resolveQuery(ctx *gin.Context) (timingQuery, *api.APIError) {
	q := timingQuery{
		params: prayer.Params{
			Method:      ctx.Query("method"),
			School:      ctx.Query("school"),
			HighLatRule: ctx.Query("highlat"),
		},
	}

	var settings *model.UserSettings
	if userID, ok := middleware.OptionalUserID(ctx, p.jwtSecret); ok {
		settings, _ = p.store.GetUserSettings(userID)
	}

	latStr, lngStr := ctx.Query("lat"), ctx.Query("lng")
	switch {
	case latStr != "" && lngStr != "":
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		if errLat != nil || errLng != nil {
			return q, api.Errorf(http.StatusBadRequest, "lat and lng must be numbers")
		}
		q.loc.Latitude, q.loc.Longitude = lat, lng
	case settings != nil && settings.Latitude != nil && settings.Longitude != nil:
		q.loc.Latitude, q.loc.Longitude = *settings.Latitude, *settings.Longitude
	default:
		return q, api.Errorf(http.StatusBadRequest, "lat and lng are required")
	}
	if err := qibla.ValidateCoordinates(q.loc.Latitude, q.loc.Longitude); err != nil {
		return q, api.Errorf(http.StatusBadRequest, err.Error())
	}

	if tzStr := ctx.Query("tz"); tzStr != "" {
		tz, err := strconv.Atoi(tzStr)
		if err != nil || tz < -14*60 || tz > 14*60 {
			return q, api.Errorf(http.StatusBadRequest, "tz must be a UTC offset in minutes")
		}
		q.loc.TzOffsetMin = tz
	} else if settings != nil && settings.TzOffsetMin != nil {
		q.loc.TzOffsetMin = *settings.TzOffsetMin
	}

	if settings != nil {
		if q.params.Method == "" {
			q.params.Method = settings.Method
		}
		if q.params.School == "" {
			q.params.School = settings.School
		}
		if q.params.HighLatRule == "" {
			q.params.HighLatRule = settings.HighLatRule
		}
	}
	if q.params.Method == "" {
		q.params.Method = db.DefaultMethod
	}
	if q.params.School == "" {
		q.params.School = db.DefaultSchool
	}
	if q.params.HighLatRule == "" {
		q.params.HighLatRule = db.DefaultHighLatRule
	}

	return q, nil
}

// GET /api/app/prayer-times?lat&lng&tz&date&method&school&highlat
func (p *PrayerController) getDayTimes(ctx *gin.Context) (any, *api.APIError) {
	q, apiErr := p.resolveQuery(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	date := time.Now().UTC().Add(time.Duration(q.loc.TzOffsetMin) * time.Minute)
	if dateStr := ctx.Query("date"); dateStr != "" {
		parsed, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, api.Errorf(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		date = parsed
	}

	key := prayer.CacheKey(date, q.loc, q.params)
	var cached model.DayTimes
	if redis.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	day, err := p.provider.DayTimes(ctx, date, q.loc, q.params)
	if err != nil {
		log.Error().Err(err).Msg("[prayer] failed to compute timetable")
		return nil, api.Errorf(http.StatusUnprocessableEntity, err.Error())
	}

	redis.SetJSON(ctx, key, day, 24*time.Hour)
	return day, nil
}

// GET /api/app/prayer-times/calendar?lat&lng&tz&year&month&method&school
func (p *PrayerController) getMonthTimes(ctx *gin.Context) (any, *api.APIError) {
	q, apiErr := p.resolveQuery(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())
	if s := ctx.Query("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1900 || v > 2500 {
			return nil, api.Errorf(http.StatusBadRequest, "invalid year")
		}
		year = v
	}
	if s := ctx.Query("month"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 12 {
			return nil, api.Errorf(http.StatusBadRequest, "invalid month")
		}
		month = v
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	days := start.AddDate(0, 1, 0).Sub(start).Hours() / 24

	out := make([]model.DayTimes, 0, int(days))
	for i := 0; i < int(days); i++ {
		day, err := p.provider.DayTimes(ctx, start.AddDate(0, 0, i), q.loc, q.params)
		if err != nil {
			log.Error().Err(err).Msg("[prayer] failed to compute month timetable")
			return nil, api.Errorf(http.StatusUnprocessableEntity, err.Error())
		}
		out = append(out, day)
	}

	return packets.MonthTimetableResponse{Year: year, Month: month, Days: out}, nil
}

// GET /api/app/prayer-times/methods
func (p *PrayerController) listMethods(_ *gin.Context) (any, *api.APIError) {
	return prayer.Methods(), nil
}
