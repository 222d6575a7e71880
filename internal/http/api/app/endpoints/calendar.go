package endpoints

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deenbuddy/minaret/internal/hijri"
	"github.com/deenbuddy/minaret/internal/http/api"
	"github.com/deenbuddy/minaret/internal/http/api/app/packets"
)

// CalendarModule mounts the Islamic calendar endpoints.
func CalendarModule() api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/calendar/today", getToday)
		c.PUBLIC_GET("/calendar/convert", convertDate)
		c.PUBLIC_GET("/calendar/events", listEvents)
	})
}

// GET /api/app/calendar/today?tz
func getToday(ctx *gin.Context) (any, *api.APIError) {
	tz := 0
	if s := ctx.Query("tz"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < -14*60 || v > 14*60 {
			return nil, api.Errorf(http.StatusBadRequest, "tz must be a UTC offset in minutes")
		}
		tz = v
	}

	now := time.Now().UTC().Add(time.Duration(tz) * time.Minute)
	h := hijri.FromTime(now)

	resp := packets.TodayResponse{
		Gregorian: now.Format(time.DateOnly),
		Hijri:     h,
		Formatted: hijri.Format(h),
	}
	if name, ok := hijri.EventOn(h.Month, h.Day); ok {
		resp.Event = &name
	}
	return resp, nil
}

// GET /api/app/calendar/convert?date=YYYY-MM-DD or ?hijri=Y-M-D
func convertDate(ctx *gin.Context) (any, *api.APIError) {
	if dateStr := ctx.Query("date"); dateStr != "" {
		g, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, api.Errorf(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		h := hijri.FromTime(g)
		return packets.ConvertResponse{
			Gregorian: g.Format(time.DateOnly),
			Hijri:     h,
			Formatted: hijri.Format(h),
		}, nil
	}

	if hijriStr := ctx.Query("hijri"); hijriStr != "" {
		year, month, day, ok := parseHijriDate(hijriStr)
		if !ok {
			return nil, api.Errorf(http.StatusBadRequest, "hijri must be a valid Y-M-D date")
		}
		g := hijri.ToTime(year, month, day)
		converted := hijri.FromTime(g)
		return packets.ConvertResponse{
			Gregorian: g.Format(time.DateOnly),
			Hijri:     converted,
			Formatted: hijri.Format(converted),
		}, nil
	}

	return nil, api.Errorf(http.StatusBadRequest, "date or hijri parameter is required")
}

// parseHijriDate splits a Y-M-D string and validates it against the
// tabular calendar; Gregorian month lengths do not apply here.
func parseHijriDate(s string) (year, month, day int, ok bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	year, errY := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	day, errD := strconv.Atoi(parts[2])
	if errY != nil || errM != nil || errD != nil {
		return 0, 0, 0, false
	}
	if year < 1 || year > 2000 || month < 1 || month > 12 {
		return 0, 0, 0, false
	}
	if day < 1 || day > hijri.DaysInMonth(year, month) {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

// GET /api/app/calendar/events?year (Hijri year, defaults to current)
func listEvents(ctx *gin.Context) (any, *api.APIError) {
	year := hijri.FromTime(time.Now().UTC()).Year
	if s := ctx.Query("year"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 2000 {
			return nil, api.Errorf(http.StatusBadRequest, "invalid hijri year")
		}
		year = v
	}
	return hijri.EventsForYear(year), nil
}
