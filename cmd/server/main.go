package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/deenbuddy/minaret/internal/config"
	"github.com/deenbuddy/minaret/internal/db"
	"github.com/deenbuddy/minaret/internal/http/middleware"
	"github.com/deenbuddy/minaret/internal/prayer"
	"github.com/deenbuddy/minaret/internal/quran"
	"github.com/deenbuddy/minaret/internal/redis"
	"github.com/deenbuddy/minaret/internal/scheduler"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if cfg.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		gin.SetMode(gin.ReleaseMode)
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	store := db.NewStore(nil)

	if cfg.RedisAddress != "" {
		redis.InitRedis(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
	} else {
		log.Warn().Msg("REDIS_ADDRESS not set, caching and pairing codes disabled")
	}

	storageSystem := InitStorage(cfg)

	corpus := quran.NewCorpus()
	verses, err := store.ListAllVerses()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load quran corpus")
	}
	corpus.Replace(verses)
	log.Info().Int("verses", len(verses)).Msg("quran corpus loaded")

	if cfg.MQTTBrokerURL != "" {
		middleware.SetBrokerURL(cfg.MQTTBrokerURL)
		if err := middleware.InitMQTT(); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to MQTT broker")
		}
		defer middleware.CleanupMQTT()
	} else {
		log.Warn().Msg("MQTT_BROKER_URL not set, board push disabled")
	}

	provider := prayer.NewProvider(cfg.PrayerProvider, cfg.AladhanBaseURL)

	sched := scheduler.New(store, provider)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer sched.Stop()

	r := gin.New()
	r.Use(gin.Recovery())
	RegisterRoutes(r, cfg, store, storageSystem, provider, corpus, sched, LoadTemplates())

	go func() {
		log.Info().Str("address", cfg.ServerAddress).Msg("server listening")
		if err := r.Run(cfg.ServerAddress); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
}
