package endpoints

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/deenbuddy/minaret/internal/db"
	"github.com/deenbuddy/minaret/internal/http/api"
)

type GuideReadController struct {
	store db.Store
}

// GuidesModule mounts the public, published-only guide reads.
func GuidesModule(store db.Store) api.Module {
	ctl := &GuideReadController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/guides", ctl.listGuides)
		c.PUBLIC_GET("/guides/:id", ctl.getGuide)
	})
}

// GET /api/app/guides
func (g *GuideReadController) listGuides(_ *gin.Context) (any, *api.APIError) {
	guides, err := g.store.ListGuides(true)
	if err != nil {
		log.Error().Err(err).Msg("[guides] could not list guides")
		return nil, api.Errorf(http.StatusInternalServerError, "could not list guides")
	}
	return guides, nil
}

// GET /api/app/guides/:id
func (g *GuideReadController) getGuide(ctx *gin.Context) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, api.Errorf(http.StatusBadRequest, "invalid guide id")
	}
	guide, err := g.store.GetGuideByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.Errorf(http.StatusNotFound, "guide not found")
		}
		return nil, api.Errorf(http.StatusInternalServerError, "could not fetch guide")
	}
	if !guide.Published {
		return nil, api.Errorf(http.StatusNotFound, "guide not found")
	}
	return guide, nil
}
