package endpoints

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/deenbuddy/minaret/internal/http/api"
	"github.com/deenbuddy/minaret/internal/http/api/app/packets"
	"github.com/deenbuddy/minaret/internal/http/middleware"
	"github.com/deenbuddy/minaret/internal/metrics"
	"github.com/deenbuddy/minaret/internal/model"
	"github.com/deenbuddy/minaret/internal/quran"
	"github.com/deenbuddy/minaret/internal/redis"
)

const historyLength = 20

type QuranController struct {
	corpus    *quran.Corpus
	jwtSecret string
}

func newQuranController(corpus *quran.Corpus, secret string) *QuranController {
	return &QuranController{corpus: corpus, jwtSecret: secret}
}

// QuranModule mounts the public corpus endpoints.
func QuranModule(corpus *quran.Corpus, secret string) api.Module {
	ctl := newQuranController(corpus, secret)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/quran/search", ctl.search)
		c.PUBLIC_GET("/quran/surahs", ctl.listSurahs)
		c.PUBLIC_GET("/quran/surahs/:number", ctl.getSurah)
		c.PUBLIC_GET("/quran/verses/:surah/:ayah", ctl.getVerse)
	})
}

// QuranHistoryModule mounts the authed search-history endpoints.
func QuranHistoryModule() api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/quran/search/history", getSearchHistory)
		c.DELETE("/quran/search/history", clearSearchHistory)
	})
}

func historyKey(userID int) string {
	return fmt.Sprintf("search:history:%d", userID)
}

// GET /api/app/quran/search?q&limit
func (q *QuranController) search(ctx *gin.Context) (any, *api.APIError) {
	query := ctx.Query("q")
	limit := 0
	if s := ctx.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, api.Errorf(http.StatusBadRequest, "limit must be a number")
		}
		limit = v
	}

	metrics.SearchQueries.Inc()
	results := q.corpus.Search(query, limit)

	corrected := quran.Normalize(query)
	if corrected != "" {
		if userID, ok := middleware.OptionalUserID(ctx, q.jwtSecret); ok {
			redis.PushHistory(ctx, historyKey(userID), corrected, historyLength)
		}
	}

	if results == nil {
		results = []quran.Result{}
	}
	return packets.SearchResponse{Query: query, Corrected: corrected, Results: results}, nil
}

// GET /api/app/quran/surahs
func (q *QuranController) listSurahs(_ *gin.Context) (any, *api.APIError) {
	return q.corpus.Surahs(), nil
}

// GET /api/app/quran/surahs/:number
func (q *QuranController) getSurah(ctx *gin.Context) (any, *api.APIError) {
	number, err := strconv.Atoi(ctx.Param("number"))
	if err != nil || number < 1 || number > 114 {
		return nil, api.Errorf(http.StatusBadRequest, "invalid surah number")
	}
	verses := q.corpus.Surah(number)
	if len(verses) == 0 {
		return nil, api.Errorf(http.StatusNotFound, "surah not loaded")
	}
	return verses, nil
}

// GET /api/app/quran/verses/:surah/:ayah
func (q *QuranController) getVerse(ctx *gin.Context) (any, *api.APIError) {
	surah, errS := strconv.Atoi(ctx.Param("surah"))
	ayah, errA := strconv.Atoi(ctx.Param("ayah"))
	if errS != nil || errA != nil {
		return nil, api.Errorf(http.StatusBadRequest, "invalid verse reference")
	}
	verse, ok := q.corpus.ByReference(surah, ayah)
	if !ok {
		return nil, api.Errorf(http.StatusNotFound, "verse not found")
	}
	return verse, nil
}

// GET /api/app/quran/search/history
func getSearchHistory(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	queries := redis.History(ctx, historyKey(user.ID))
	if queries == nil {
		queries = []string{}
	}
	return packets.SearchHistoryResponse{Queries: queries}, nil
}

// DELETE /api/app/quran/search/history
func clearSearchHistory(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	redis.Del(ctx, historyKey(user.ID))
	return gin.H{"cleared": true}, nil
}
