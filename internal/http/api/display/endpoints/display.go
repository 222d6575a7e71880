package endpoints

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/deenbuddy/minaret/internal/db"
	"github.com/deenbuddy/minaret/internal/http/api"
	"github.com/deenbuddy/minaret/internal/http/api/display/packets"
	"github.com/deenbuddy/minaret/internal/http/middleware"
	"github.com/deenbuddy/minaret/internal/model"
	"github.com/deenbuddy/minaret/internal/prayer"
	"github.com/deenbuddy/minaret/internal/redis"
	"github.com/deenbuddy/minaret/internal/scheduler"
)

const pairingCodeTTL = 5 * time.Minute

type DisplayController struct {
	store db.Store
	sched *scheduler.Scheduler
}

func newDisplayController(store db.Store, sched *scheduler.Scheduler) *DisplayController {
	return &DisplayController{store: store, sched: sched}
}

// DisplayModule mounts the board-facing endpoints. Boards authenticate
// by serial, not JWT: an unpaired serial can only register.
func DisplayModule(store db.Store, sched *scheduler.Scheduler) api.Module {
	ctl := newDisplayController(store, sched)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/register", ctl.registerPairingCode)
		c.PUBLIC_GET("/timetable", ctl.getTimetable)
		c.RAW_GET("/page", ctl.renderPage)
		c.PUBLIC_POST("/connect", ctl.connectBoard)
	})
}

// POST /api/display/register
// A fresh board shows its pairing code on screen; the code maps to the
// device serial in redis until an admin claims it.
func (d *DisplayController) registerPairingCode(ctx *gin.Context) (any, *api.APIError) {
	var request packets.RegisterPairingCodeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	if board, err := d.store.GetBoardBySerial(request.Serial); err == nil && board.Paired {
		return nil, api.Errorf(http.StatusConflict, "board is already paired")
	}

	redis.Set(ctx, "pairing:"+request.PairingCode, request.Serial, pairingCodeTTL)
	log.Info().Str("serial", request.Serial).Msg("[display] pairing code registered")

	return packets.RegisterResponse{
		Serial:    request.Serial,
		ExpiresIn: int(pairingCodeTTL.Seconds()),
	}, nil
}

func (d *DisplayController) pairedBoard(ctx *gin.Context) (*model.Board, *api.APIError) {
	serial := strings.TrimSpace(ctx.Query("serial"))
	if serial == "" {
		return nil, api.Errorf(http.StatusBadRequest, "serial is required")
	}
	board, err := d.store.GetBoardBySerial(serial)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.Errorf(http.StatusUnauthorized, "unknown board serial")
		}
		return nil, api.Errorf(http.StatusInternalServerError, "could not look up board")
	}
	if !board.Paired {
		return nil, api.Errorf(http.StatusUnauthorized, "board is not paired")
	}
	return board, nil
}

// GET /api/display/timetable?serial
func (d *DisplayController) getTimetable(ctx *gin.Context) (any, *api.APIError) {
	board, apiErr := d.pairedBoard(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	day, err := d.sched.BoardDay(ctx, *board)
	if err != nil {
		log.Error().Err(err).Int("board_id", board.ID).Msg("[display] timetable computation failed")
		return nil, api.Errorf(http.StatusUnprocessableEntity, err.Error())
	}

	return packets.TimetableResponse{
		Board:     board.Name,
		City:      board.City,
		Timetable: day,
	}, nil
}

// GET /api/display/page?serial
// Renders the athan wall display for boards that just show a browser.
func (d *DisplayController) renderPage(ctx *gin.Context) {
	board, apiErr := d.pairedBoard(ctx)
	if apiErr != nil {
		ctx.String(apiErr.Code, apiErr.Message)
		return
	}

	day, err := d.sched.BoardDay(ctx, *board)
	if err != nil {
		ctx.String(http.StatusUnprocessableEntity, "failed to compute prayer times")
		return
	}

	localNow := time.Now().UTC().Add(time.Duration(board.TzOffsetMin) * time.Minute)

	order := []struct{ name, at string }{
		{"FAJR", day.Fajr},
		{"DHUHR", day.Dhuhr},
		{"ASR", day.Asr},
		{"MAGHRIB", day.Maghrib},
		{"ISHA", day.Isha},
	}
	prayers := make([]model.Prayer, 0, len(order))
	for _, p := range order {
		clock, period := prayer.To12Hour(p.at)
		iqama, _ := prayer.To12Hour(prayer.AddMinutes(p.at, board.IqamaOffset))
		prayers = append(prayers, model.Prayer{
			Name:   p.name,
			Time:   clock,
			Period: period,
			Iqama:  iqama,
		})
	}

	city := ""
	if board.City != nil {
		city = strings.ToUpper(*board.City)
	}

	ctx.HTML(http.StatusOK, "athan.html", model.AthanPageData{
		Masjid:    board.Name,
		City:      city,
		Date:      strings.ToUpper(localNow.Format("January 2, 2006")),
		HijriDate: day.Hijri,
		Prayers:   prayers,
	})
}

// POST /api/display/connect
// Attaches a paired board to MQTT for push updates.
func (d *DisplayController) connectBoard(ctx *gin.Context) (any, *api.APIError) {
	var request packets.ConnectRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	board, err := d.store.GetBoardBySerial(request.Serial)
	if err != nil {
		return nil, api.Errorf(http.StatusUnauthorized, "unknown board serial")
	}
	if !board.Paired {
		return nil, api.Errorf(http.StatusUnauthorized, "board is not paired")
	}

	if err := middleware.ConnectBoard(request.Serial); err != nil {
		log.Error().Err(err).Str("serial", request.Serial).Msg("[display] MQTT attach failed")
		return nil, api.Errorf(http.StatusBadGateway, "failed to attach to MQTT")
	}

	return gin.H{"connected": true}, nil
}
