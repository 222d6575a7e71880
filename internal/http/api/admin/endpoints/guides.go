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
	"github.com/deenbuddy/minaret/internal/http/api/admin/packets"
	"github.com/deenbuddy/minaret/internal/model"
	"github.com/deenbuddy/minaret/internal/storage"
)

type GuideController struct {
	store   db.Store
	storage storage.Storage
}

func newGuideController(store db.Store, storageSystem storage.Storage) *GuideController {
	return &GuideController{store: store, storage: storageSystem}
}

// GuideModule mounts all authenticated guide-management endpoints.
func GuideModule(store db.Store, storageSystem storage.Storage) api.Module {
	ctl := newGuideController(store, storageSystem)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/guides", ctl.listGuides)
		c.POST("/guides", ctl.createGuide)
		c.GET("/guides/:id", ctl.getGuide)
		c.PUT("/guides/:id", ctl.updateGuide)
		c.DELETE("/guides/:id", ctl.deleteGuide)

		c.POST("/guides/:id/steps", ctl.addStep)
		c.PUT("/guides/steps/:step_id", ctl.updateStep)
		c.DELETE("/guides/steps/:step_id", ctl.deleteStep)
		c.POST("/guides/:id/steps/reorder", ctl.reorderSteps)
		c.POST("/guides/:id/steps/:step_id/media", ctl.uploadStepMedia)
	})
}

func (g *GuideController) ownedGuide(ctx *gin.Context, user *model.User) (*model.Guide, *api.APIError) {
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
	if guide.CreatedBy != user.ID {
		return nil, api.Errorf(http.StatusForbidden, "guide belongs to another user")
	}
	return guide, nil
}

// GET /api/admin/guides
func (g *GuideController) listGuides(_ *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := g.store.ListGuides(false)
	if err != nil {
		log.Error().Err(err).Msg("[guides] could not list guides")
		return nil, api.Errorf(http.StatusInternalServerError, "could not list guides")
	}
	out := make([]model.Guide, 0, len(all))
	for _, guide := range all {
		if guide.CreatedBy == user.ID {
			out = append(out, guide)
		}
	}
	return out, nil
}

// POST /api/admin/guides
func (g *GuideController) createGuide(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateGuideRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	id, err := g.store.CreateGuide(request.Title, request.Prayer, request.School,
		request.Summary, request.Difficulty, user.ID)
	if err != nil {
		log.Error().Err(err).Msg("[guides] could not create guide")
		return nil, api.Errorf(http.StatusInternalServerError, "could not create guide")
	}

	guide, err := g.store.GetGuideByID(id)
	if err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not fetch created guide")
	}
	return guide, nil
}

// GET /api/admin/guides/:id
func (g *GuideController) getGuide(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	guide, apiErr := g.ownedGuide(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	return guide, nil
}

// PUT /api/admin/guides/:id
func (g *GuideController) updateGuide(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	guide, apiErr := g.ownedGuide(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateGuideRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	if err := g.store.UpdateGuide(guide.ID, request.Title, request.Prayer, request.School,
		request.Summary, request.Difficulty, request.Published); err != nil {
		log.Error().Err(err).Int("guide_id", guide.ID).Msg("[guides] could not update guide")
		return nil, api.Errorf(http.StatusInternalServerError, "could not update guide")
	}

	updated, err := g.store.GetGuideByID(guide.ID)
	if err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not fetch updated guide")
	}
	return updated, nil
}

// DELETE /api/admin/guides/:id
func (g *GuideController) deleteGuide(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	guide, apiErr := g.ownedGuide(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := g.store.DeleteGuide(guide.ID); err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not delete guide")
	}
	return gin.H{"deleted": true}, nil
}

// POST /api/admin/guides/:id/steps
func (g *GuideController) addStep(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	guide, apiErr := g.ownedGuide(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.CreateGuideStepRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	stepID, err := g.store.CreateGuideStep(guide.ID, request.Title, request.Body, request.Arabic)
	if err != nil {
		log.Error().Err(err).Int("guide_id", guide.ID).Msg("[guides] could not add step")
		return nil, api.Errorf(http.StatusInternalServerError, "could not add step")
	}

	step, err := g.store.GetGuideStep(stepID)
	if err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not fetch created step")
	}
	return step, nil
}

func (g *GuideController) ownedStep(ctx *gin.Context, user *model.User) (*model.GuideStep, *api.APIError) {
	stepID, err := strconv.Atoi(ctx.Param("step_id"))
	if err != nil {
		return nil, api.Errorf(http.StatusBadRequest, "invalid step id")
	}
	step, err := g.store.GetGuideStep(stepID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.Errorf(http.StatusNotFound, "step not found")
		}
		return nil, api.Errorf(http.StatusInternalServerError, "could not fetch step")
	}
	guide, err := g.store.GetGuideByID(step.GuideID)
	if err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not fetch step's guide")
	}
	if guide.CreatedBy != user.ID {
		return nil, api.Errorf(http.StatusForbidden, "guide belongs to another user")
	}
	return step, nil
}

// PUT /api/admin/guides/steps/:step_id
func (g *GuideController) updateStep(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	step, apiErr := g.ownedStep(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateGuideStepRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	if err := g.store.UpdateGuideStep(step.ID, request.Title, request.Body, request.Arabic); err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not update step")
	}
	updated, err := g.store.GetGuideStep(step.ID)
	if err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not fetch updated step")
	}
	return updated, nil
}

// DELETE /api/admin/guides/steps/:step_id
func (g *GuideController) deleteStep(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	step, apiErr := g.ownedStep(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := g.store.DeleteGuideStep(step.ID); err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not delete step")
	}
	return gin.H{"deleted": true}, nil
}

// POST /api/admin/guides/:id/steps/reorder
func (g *GuideController) reorderSteps(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	guide, apiErr := g.ownedGuide(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.ReorderStepsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}
	if len(request.StepIDs) != len(guide.Steps) {
		return nil, api.Errorf(http.StatusBadRequest, "step_ids must list every step exactly once")
	}

	if err := g.store.ReorderGuideSteps(guide.ID, request.StepIDs); err != nil {
		log.Error().Err(err).Int("guide_id", guide.ID).Msg("[guides] could not reorder steps")
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	updated, err := g.store.GetGuideByID(guide.ID)
	if err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not fetch reordered guide")
	}
	return updated, nil
}

// POST /api/admin/guides/:id/steps/:step_id/media
func (g *GuideController) uploadStepMedia(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	guide, apiErr := g.ownedGuide(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	stepID, err := strconv.Atoi(ctx.Param("step_id"))
	if err != nil {
		return nil, api.Errorf(http.StatusBadRequest, "invalid step id")
	}
	step, err := g.store.GetGuideStep(stepID)
	if err != nil || step.GuideID != guide.ID {
		return nil, api.Errorf(http.StatusNotFound, "step not found")
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, api.Errorf(http.StatusBadRequest, "file is required")
	}

	url, err := g.storage.SaveFile(fileHeader, fileHeader.Filename)
	if err != nil {
		log.Error().Err(err).Int("step_id", step.ID).Msg("[guides] could not store media")
		return nil, api.Errorf(http.StatusInternalServerError, "could not store media")
	}

	if err := g.store.SetGuideStepMedia(step.ID, url); err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not attach media")
	}
	return gin.H{"media_url": url}, nil
}
