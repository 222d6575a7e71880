package endpoints

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deenbuddy/minaret/internal/http/api"
	"github.com/deenbuddy/minaret/internal/metrics"
	"github.com/deenbuddy/minaret/internal/qibla"
	"github.com/deenbuddy/minaret/internal/redis"
)

// QiblaModule mounts the public qibla endpoint.
func QiblaModule() api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/qibla", getQibla)
	})
}

// GET /api/app/qibla?lat&lng
func getQibla(ctx *gin.Context) (any, *api.APIError) {
	lat, errLat := strconv.ParseFloat(ctx.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(ctx.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		return nil, api.Errorf(http.StatusBadRequest, "lat and lng are required numbers")
	}
	if err := qibla.ValidateCoordinates(lat, lng); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	key := qibla.CacheKey(lat, lng)
	var cached qibla.Reading
	if redis.GetJSON(ctx, key, &cached) {
		metrics.QiblaCacheHits.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.QiblaCacheHits.WithLabelValues("miss").Inc()

	reading := qibla.FromCoordinates(lat, lng)
	// the bearing never changes for a coordinate bucket; the TTL just
	// bounds the key space
	redis.SetJSON(ctx, key, reading, 7*24*time.Hour)
	return reading, nil
}
