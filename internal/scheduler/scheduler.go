// Package scheduler runs the background cron jobs: a nightly timetable
// precompute for every paired board and a minute tick that publishes
// adhan events when a prayer time arrives.
package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/deenbuddy/minaret/internal/db"
	"github.com/deenbuddy/minaret/internal/http/middleware"
	"github.com/deenbuddy/minaret/internal/metrics"
	"github.com/deenbuddy/minaret/internal/model"
	"github.com/deenbuddy/minaret/internal/prayer"
	"github.com/deenbuddy/minaret/internal/redis"
)

const boardTimetableTTL = 26 * time.Hour

type Scheduler struct {
	cron     *cron.Cron
	store    db.Store
	provider prayer.Provider
}

func New(store db.Store, provider prayer.Provider) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		store:    store,
		provider: provider,
	}
}

// Start registers the jobs and launches the cron loop. Job failures are
// logged and counted; the loop itself never stops on error.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("5 0 * * *", s.precomputeAll); err != nil {
		return fmt.Errorf("failed to register precompute job: %w", err)
	}
	if _, err := s.cron.AddFunc("* * * * *", s.adhanTick); err != nil {
		return fmt.Errorf("failed to register adhan job: %w", err)
	}
	s.cron.Start()
	log.Info().Msg("scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func timetableKey(serial string) string {
	return "board:timetable:" + serial
}

func boardParams(b model.Board) (prayer.Location, prayer.Params) {
	loc := prayer.Location{
		Latitude:    b.Latitude,
		Longitude:   b.Longitude,
		TzOffsetMin: b.TzOffsetMin,
	}
	params := prayer.Params{Method: b.Method, School: b.School, HighLatRule: db.DefaultHighLatRule}
	if params.Method == "" {
		params.Method = db.DefaultMethod
	}
	if params.School == "" {
		params.School = db.DefaultSchool
	}
	return loc, params
}

// BoardDay computes or fetches today's timetable for one board, caching
// the result for the adhan tick and the display endpoints.
func (s *Scheduler) BoardDay(ctx context.Context, b model.Board) (model.DayTimes, error) {
	serial := ""
	if b.Serial != nil {
		serial = *b.Serial
	}

	var cached model.DayTimes
	localNow := time.Now().UTC().Add(time.Duration(b.TzOffsetMin) * time.Minute)
	if serial != "" && redis.GetJSON(ctx, timetableKey(serial), &cached) &&
		cached.Date == localNow.Format(time.DateOnly) {
		return cached, nil
	}

	loc, params := boardParams(b)
	day, err := s.provider.DayTimes(ctx, localNow, loc, params)
	if err != nil {
		return model.DayTimes{}, err
	}
	metrics.TimetablesComputed.Inc()

	if serial != "" {
		redis.SetJSON(ctx, timetableKey(serial), day, boardTimetableTTL)
	}
	return day, nil
}

// PublishBoard pushes the board's current timetable over MQTT.
func (s *Scheduler) PublishBoard(ctx context.Context, b model.Board) error {
	if b.Serial == nil {
		return fmt.Errorf("board %d has no serial", b.ID)
	}

	day, err := s.BoardDay(ctx, b)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(day)
	if err != nil {
		return err
	}
	if err := middleware.PublishToBoard(*b.Serial, "timetable", payload); err != nil {
		metrics.BoardPublishFailures.Inc()
		return err
	}
	metrics.BoardPublishes.Inc()
	return nil
}

// precomputeAll warms every paired board's timetable shortly after
// midnight UTC and pushes it out.
func (s *Scheduler) precomputeAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	boards, err := s.store.ListPairedBoards()
	if err != nil {
		log.Error().Err(err).Msg("[scheduler] precompute: could not list boards")
		return
	}

	for _, b := range boards {
		if err := s.PublishBoard(ctx, b); err != nil {
			log.Error().Err(err).Int("board_id", b.ID).Msg("[scheduler] precompute: publish failed")
		}
	}
	log.Info().Int("boards", len(boards)).Msg("[scheduler] nightly precompute finished")
}

// adhanEvent is the payload published when a prayer time arrives.
type adhanEvent struct {
	Prayer string `json:"prayer"`
	Time   string `json:"time"`
	Date   string `json:"date"`
}

// dueAt reports which prayer, if any, falls exactly on the given local
// "HH:MM" minute.
func dueAt(day model.DayTimes, hhmm string) (string, bool) {
	checks := []struct{ name, at string }{
		{"fajr", day.Fajr},
		{"dhuhr", day.Dhuhr},
		{"asr", day.Asr},
		{"maghrib", day.Maghrib},
		{"isha", day.Isha},
	}
	for _, c := range checks {
		if c.at != "" && c.at == hhmm {
			return c.name, true
		}
	}
	return "", false
}

// adhanTick checks every paired board's cached timetable against its
// local clock and publishes an adhan event on a match.
func (s *Scheduler) adhanTick() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	boards, err := s.store.ListPairedBoards()
	if err != nil {
		log.Error().Err(err).Msg("[scheduler] adhan tick: could not list boards")
		return
	}

	nowUTC := time.Now().UTC()
	for _, b := range boards {
		if b.Serial == nil {
			continue
		}
		day, err := s.BoardDay(ctx, b)
		if err != nil {
			log.Error().Err(err).Int("board_id", b.ID).Msg("[scheduler] adhan tick: timetable unavailable")
			continue
		}

		local := nowUTC.Add(time.Duration(b.TzOffsetMin) * time.Minute)
		prayerName, due := dueAt(day, local.Format("15:04"))
		if !due {
			continue
		}

		payload, _ := json.Marshal(adhanEvent{
			Prayer: prayerName,
			Time:   local.Format("15:04"),
			Date:   day.Date,
		})
		if err := middleware.PublishToBoard(*b.Serial, "adhan", payload); err != nil {
			metrics.BoardPublishFailures.Inc()
			log.Error().Err(err).Str("serial", *b.Serial).Msg("[scheduler] adhan publish failed")
			continue
		}
		metrics.BoardPublishes.Inc()
		log.Info().Str("serial", *b.Serial).Str("prayer", prayerName).Msg("[scheduler] adhan published")
	}
}
