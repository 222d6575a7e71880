package endpoints

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/deenbuddy/minaret/internal/db"
	"github.com/deenbuddy/minaret/internal/http/api"
	"github.com/deenbuddy/minaret/internal/http/api/app/packets"
	"github.com/deenbuddy/minaret/internal/model"
)

type DhikrController struct {
	store db.Store
}

// DhikrModule mounts the authed tasbih-tracking endpoints.
func DhikrModule(store db.Store) api.Module {
	ctl := &DhikrController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/dhikr/presets", ctl.listPresets)
		c.POST("/dhikr/sessions", ctl.createSession)
		c.POST("/dhikr/sessions/:id/increment", ctl.incrementSession)
		c.GET("/dhikr/sessions", ctl.listSessions)
		c.GET("/dhikr/summary", ctl.getSummary)
	})
}

// GET /api/app/dhikr/presets
func (d *DhikrController) listPresets(_ *gin.Context, _ *model.User) (any, *api.APIError) {
	presets, err := d.store.ListDhikrPresets()
	if err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not list presets")
	}
	return presets, nil
}

// POST /api/app/dhikr/sessions
func (d *DhikrController) createSession(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateDhikrSessionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}
	if request.Count < 0 || request.Target < 0 {
		return nil, api.Errorf(http.StatusBadRequest, "count and target must not be negative")
	}

	if _, err := d.store.GetDhikrPreset(request.PresetID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.Errorf(http.StatusNotFound, "preset not found")
		}
		return nil, api.Errorf(http.StatusInternalServerError, "could not look up preset")
	}

	session, err := d.store.CreateDhikrSession(user.ID, request.PresetID, request.Target, request.Count)
	if err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("[dhikr] could not create session")
		return nil, api.Errorf(http.StatusInternalServerError, "could not create session")
	}
	return session, nil
}

// POST /api/app/dhikr/sessions/:id/increment
func (d *DhikrController) incrementSession(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, api.Errorf(http.StatusBadRequest, "invalid session id")
	}

	delta := 1
	var request packets.IncrementDhikrRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			return nil, api.Errorf(http.StatusBadRequest, err.Error())
		}
		if request.Delta != 0 {
			delta = request.Delta
		}
	}
	if delta < 1 {
		return nil, api.Errorf(http.StatusBadRequest, "delta must be positive")
	}

	session, err := d.store.IncrementDhikrSession(user.ID, id, delta)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.Errorf(http.StatusNotFound, "session not found")
		}
		return nil, api.Errorf(http.StatusInternalServerError, "could not increment session")
	}
	return session, nil
}

func parseDay(ctx *gin.Context) (time.Time, *api.APIError) {
	day := time.Now().UTC()
	if s := ctx.Query("date"); s != "" {
		parsed, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return time.Time{}, api.Errorf(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		day = parsed
	}
	return day, nil
}

// GET /api/app/dhikr/sessions?date
func (d *DhikrController) listSessions(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	day, apiErr := parseDay(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	sessions, err := d.store.ListDhikrSessions(user.ID, day)
	if err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not list sessions")
	}
	if sessions == nil {
		sessions = []model.DhikrSession{}
	}
	return sessions, nil
}

// GET /api/app/dhikr/summary?date
func (d *DhikrController) getSummary(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	day, apiErr := parseDay(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	tallies, err := d.store.DhikrDailySummary(user.ID, day)
	if err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not build summary")
	}
	total := 0
	for _, t := range tallies {
		total += t.Total
	}
	if tallies == nil {
		tallies = []model.PresetTally{}
	}

	days, err := d.store.ListDhikrDays(user.ID, 60)
	if err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not build summary")
	}

	return packets.DhikrSummaryResponse{
		Date:       day.Format(time.DateOnly),
		Total:      total,
		Tallies:    tallies,
		StreakDays: streak(days, day),
	}, nil
}

// streak counts consecutive recorded days walking back from asOf.
func streak(days []time.Time, asOf time.Time) int {
	recorded := make(map[string]bool, len(days))
	for _, d := range days {
		recorded[d.Format(time.DateOnly)] = true
	}
	count := 0
	for d := asOf; recorded[d.Format(time.DateOnly)]; d = d.AddDate(0, 0, -1) {
		count++
	}
	return count
}
