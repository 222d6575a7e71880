package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/deenbuddy/minaret/internal/db"
	"github.com/deenbuddy/minaret/internal/http/api"
	"github.com/deenbuddy/minaret/internal/http/api/admin/packets"
	"github.com/deenbuddy/minaret/internal/model"
	"github.com/deenbuddy/minaret/internal/quran"
)

type CorpusController struct {
	store  db.Store
	corpus *quran.Corpus
}

func newCorpusController(store db.Store, corpus *quran.Corpus) *CorpusController {
	return &CorpusController{store: store, corpus: corpus}
}

// CorpusModule mounts the verse import and inspection endpoints.
func CorpusModule(store db.Store, corpus *quran.Corpus) api.Module {
	ctl := newCorpusController(store, corpus)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/quran/verses/import", ctl.importVerses)
		c.GET("/quran/verses", ctl.listVerses)
	})
}

// POST /api/admin/quran/verses/import
// Upserts the payload and reloads the in-memory corpus.
func (cc *CorpusController) importVerses(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.ImportVersesRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	for _, v := range request.Verses {
		if v.Surah < 1 || v.Surah > 114 || v.Ayah < 1 {
			return nil, api.Errorf(http.StatusBadRequest, "verse references must be within 1..114 surahs")
		}
	}

	imported := 0
	for _, v := range request.Verses {
		if _, err := cc.store.UpsertVerse(v); err != nil {
			log.Error().Err(err).Int("surah", v.Surah).Int("ayah", v.Ayah).
				Int("user_id", user.ID).Msg("[corpus] import failed mid-batch")
			return nil, api.Errorf(http.StatusInternalServerError, "import failed after "+strconv.Itoa(imported)+" verses")
		}
		imported++
	}

	verses, err := cc.store.ListAllVerses()
	if err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "imported but could not reload corpus")
	}
	cc.corpus.Replace(verses)

	log.Info().Int("imported", imported).Int("corpus_size", len(verses)).Msg("[corpus] verses imported")
	return gin.H{"imported": imported, "corpus_size": len(verses)}, nil
}

// GET /api/admin/quran/verses?surah
func (cc *CorpusController) listVerses(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	if s := ctx.Query("surah"); s != "" {
		surah, err := strconv.Atoi(s)
		if err != nil || surah < 1 || surah > 114 {
			return nil, api.Errorf(http.StatusBadRequest, "invalid surah number")
		}
		verses, err := cc.store.ListVersesBySurah(surah)
		if err != nil {
			return nil, api.Errorf(http.StatusInternalServerError, "could not list verses")
		}
		return verses, nil
	}

	verses, err := cc.store.ListAllVerses()
	if err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not list verses")
	}
	return verses, nil
}
