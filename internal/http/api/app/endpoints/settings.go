package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/deenbuddy/minaret/internal/db"
	"github.com/deenbuddy/minaret/internal/http/api"
	"github.com/deenbuddy/minaret/internal/http/api/app/packets"
	"github.com/deenbuddy/minaret/internal/model"
	"github.com/deenbuddy/minaret/internal/prayer"
	"github.com/deenbuddy/minaret/internal/qibla"
)

type SettingsController struct {
	store db.Store
}

// SettingsModule mounts the authed calculation-preference endpoints.
func SettingsModule(store db.Store) api.Module {
	ctl := &SettingsController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/settings", ctl.getSettings)
		c.PUT("/settings", ctl.updateSettings)
	})
}

// GET /api/app/settings
func (s *SettingsController) getSettings(_ *gin.Context, user *model.User) (any, *api.APIError) {
	settings, err := s.store.GetUserSettings(user.ID)
	if err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not fetch settings")
	}
	return settings, nil
}

// PUT /api/app/settings
func (s *SettingsController) updateSettings(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	if request.Method != nil {
		if _, err := prayer.MethodByName(*request.Method); err != nil {
			return nil, api.Errorf(http.StatusBadRequest, err.Error())
		}
	}
	if request.School != nil {
		if _, err := prayer.SchoolFactor(*request.School); err != nil {
			return nil, api.Errorf(http.StatusBadRequest, err.Error())
		}
	}
	if request.HighLatRule != nil {
		// store the canonical lowercase form so later timetable
		// computations resolve it
		rule, err := prayer.NormalizeHighLatRule(*request.HighLatRule)
		if err != nil {
			return nil, api.Errorf(http.StatusBadRequest, err.Error())
		}
		request.HighLatRule = &rule
	}
	if request.Latitude != nil || request.Longitude != nil {
		if request.Latitude == nil || request.Longitude == nil {
			return nil, api.Errorf(http.StatusBadRequest, "latitude and longitude must be set together")
		}
		if err := qibla.ValidateCoordinates(*request.Latitude, *request.Longitude); err != nil {
			return nil, api.Errorf(http.StatusBadRequest, err.Error())
		}
	}

	settings, err := s.store.UpdateUserSettings(user.ID,
		request.Method, request.School, request.HighLatRule,
		request.Latitude, request.Longitude, request.City, request.TzOffsetMin)
	if err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("[settings] could not update settings")
		return nil, api.Errorf(http.StatusInternalServerError, "could not update settings")
	}
	return settings, nil
}
