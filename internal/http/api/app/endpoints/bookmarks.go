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
	"github.com/deenbuddy/minaret/internal/http/api/app/packets"
	"github.com/deenbuddy/minaret/internal/model"
)

type BookmarkController struct {
	store db.Store
}

// BookmarksModule mounts the authed verse-bookmark endpoints.
func BookmarksModule(store db.Store) api.Module {
	ctl := &BookmarkController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/bookmarks", ctl.listBookmarks)
		c.POST("/bookmarks", ctl.createBookmark)
		c.DELETE("/bookmarks/:id", ctl.deleteBookmark)
	})
}

// GET /api/app/bookmarks
func (b *BookmarkController) listBookmarks(_ *gin.Context, user *model.User) (any, *api.APIError) {
	bookmarks, err := b.store.ListBookmarks(user.ID)
	if err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not list bookmarks")
	}
	if bookmarks == nil {
		bookmarks = []model.Bookmark{}
	}
	return bookmarks, nil
}

// POST /api/app/bookmarks
func (b *BookmarkController) createBookmark(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateBookmarkRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	verse, err := b.store.GetVerse(request.Surah, request.Ayah)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.Errorf(http.StatusNotFound, "verse not found")
		}
		return nil, api.Errorf(http.StatusInternalServerError, "could not look up verse")
	}

	id, err := b.store.CreateBookmark(user.ID, verse.ID, request.Note)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateBookmark) {
			return nil, api.Errorf(http.StatusConflict, db.ErrDuplicateBookmark.Error())
		}
		log.Error().Err(err).Int("user_id", user.ID).Msg("[bookmarks] could not create bookmark")
		return nil, api.Errorf(http.StatusInternalServerError, "could not create bookmark")
	}

	return gin.H{"id": id, "verse": verse}, nil
}

// DELETE /api/app/bookmarks/:id
func (b *BookmarkController) deleteBookmark(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, api.Errorf(http.StatusBadRequest, "invalid bookmark id")
	}
	if err := b.store.DeleteBookmark(user.ID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.Errorf(http.StatusNotFound, "bookmark not found")
		}
		return nil, api.Errorf(http.StatusInternalServerError, "could not delete bookmark")
	}
	return gin.H{"deleted": true}, nil
}
