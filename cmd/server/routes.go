package main

import (
	"html/template"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/deenbuddy/minaret/internal/config"
	"github.com/deenbuddy/minaret/internal/db"
	"github.com/deenbuddy/minaret/internal/http/api"
	adminapi "github.com/deenbuddy/minaret/internal/http/api/admin/endpoints"
	appapi "github.com/deenbuddy/minaret/internal/http/api/app/endpoints"
	displayapi "github.com/deenbuddy/minaret/internal/http/api/display/endpoints"
	"github.com/deenbuddy/minaret/internal/http/middleware"
	"github.com/deenbuddy/minaret/internal/metrics"
	"github.com/deenbuddy/minaret/internal/prayer"
	"github.com/deenbuddy/minaret/internal/quran"
	"github.com/deenbuddy/minaret/internal/scheduler"
	"github.com/deenbuddy/minaret/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, store db.Store,
	storageSystem storage.Storage, provider prayer.Provider,
	corpus *quran.Corpus, sched *scheduler.Scheduler, tmpl *template.Template) {

	r.SetHTMLTemplate(tmpl)
	r.Use(metrics.Middleware())

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api/app",
		Auth:       false,
		Middleware: []gin.HandlerFunc{limiter.Middleware()},
	},
		appapi.AuthPublicModule(cfg.JWTSecret, store),
		appapi.PrayerModule(provider, store, cfg.JWTSecret),
		appapi.QiblaModule(),
		appapi.CalendarModule(),
		appapi.QuranModule(corpus, cfg.JWTSecret),
		appapi.GuidesModule(store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/app",
		Auth:      true,
		SecretKey: cfg.JWTSecret,
	},
		appapi.AuthSessionModule(cfg.JWTSecret, store),
		appapi.SettingsModule(store),
		appapi.BookmarksModule(store),
		appapi.DhikrModule(store),
		appapi.QuranHistoryModule(),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: cfg.JWTSecret,
	},
		adminapi.GuideModule(store, storageSystem),
		adminapi.CorpusModule(store, corpus),
		adminapi.BoardModule(store, sched),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/display",
	},
		displayapi.DisplayModule(store, sched),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	// Static content
	if !cfg.UseSpaces {
		r.Static("/uploads", "./uploads")
	}
}
