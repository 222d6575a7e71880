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
	"github.com/deenbuddy/minaret/internal/prayer"
	"github.com/deenbuddy/minaret/internal/qibla"
	"github.com/deenbuddy/minaret/internal/redis"
	"github.com/deenbuddy/minaret/internal/scheduler"
)

type BoardController struct {
	store db.Store
	sched *scheduler.Scheduler
}

func newBoardController(store db.Store, sched *scheduler.Scheduler) *BoardController {
	return &BoardController{store: store, sched: sched}
}

// BoardModule mounts all authenticated display-board endpoints.
func BoardModule(store db.Store, sched *scheduler.Scheduler) api.Module {
	ctl := newBoardController(store, sched)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/boards", ctl.listBoards)
		c.POST("/boards", ctl.createBoard)
		c.GET("/boards/:id", ctl.getBoard)
		c.PUT("/boards/:id", ctl.updateBoard)
		c.DELETE("/boards/:id", ctl.deleteBoard)

		c.POST("/boards/pair", ctl.pairBoard)
		c.POST("/boards/:id/publish", ctl.publishBoard)
	})
}

func (b *BoardController) ownedBoard(ctx *gin.Context, user *model.User) (*model.Board, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, api.Errorf(http.StatusBadRequest, "invalid board id")
	}
	board, err := b.store.GetBoardByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.Errorf(http.StatusNotFound, "board not found")
		}
		return nil, api.Errorf(http.StatusInternalServerError, "could not fetch board")
	}
	if board.CreatedBy != user.ID {
		return nil, api.Errorf(http.StatusForbidden, "board belongs to another user")
	}
	return board, nil
}

// GET /api/admin/boards
func (b *BoardController) listBoards(_ *gin.Context, user *model.User) (any, *api.APIError) {
	all, err := b.store.ListBoards()
	if err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not list boards")
	}
	out := make([]model.Board, 0, len(all))
	for _, board := range all {
		if board.CreatedBy == user.ID {
			out = append(out, board)
		}
	}
	return out, nil
}

// POST /api/admin/boards
func (b *BoardController) createBoard(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.CreateBoardRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}
	if err := qibla.ValidateCoordinates(request.Latitude, request.Longitude); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}
	method := request.Method
	if method == "" {
		method = db.DefaultMethod
	}
	if _, err := prayer.MethodByName(method); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}
	school := request.School
	if school == "" {
		school = db.DefaultSchool
	}
	if _, err := prayer.SchoolFactor(school); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	board, err := b.store.CreateBoard(request.Name, request.City,
		request.Latitude, request.Longitude, request.TzOffsetMin,
		method, school, request.IqamaOffset, user.ID)
	if err != nil {
		log.Error().Err(err).Msg("[boards] could not create board")
		return nil, api.Errorf(http.StatusInternalServerError, "could not create board")
	}
	return board, nil
}

// GET /api/admin/boards/:id
func (b *BoardController) getBoard(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	board, apiErr := b.ownedBoard(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	return board, nil
}

// PUT /api/admin/boards/:id
func (b *BoardController) updateBoard(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	board, apiErr := b.ownedBoard(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateBoardRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}
	if request.Method != nil {
		if _, err := prayer.MethodByName(*request.Method); err != nil {
			return nil, api.Errorf(http.StatusBadRequest, err.Error())
		}
	}
	if request.School != nil {
		if _, err := prayer.SchoolFactor(*request.School); err != nil {
			return nil, api.Errorf(http.StatusBadRequest, err.Error())
		}
	}

	if err := b.store.UpdateBoard(board.ID, request.Name, request.City,
		request.Latitude, request.Longitude, request.TzOffsetMin,
		request.Method, request.School, request.IqamaOffset); err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not update board")
	}

	// location or method changes invalidate the cached timetable
	if board.Serial != nil {
		redis.Del(ctx, "board:timetable:"+*board.Serial)
	}

	updated, err := b.store.GetBoardByID(board.ID)
	if err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not fetch updated board")
	}
	return updated, nil
}

// DELETE /api/admin/boards/:id
func (b *BoardController) deleteBoard(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	board, apiErr := b.ownedBoard(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	if err := b.store.DeleteBoard(board.ID); err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not delete board")
	}
	return gin.H{"deleted": true}, nil
}

// POST /api/admin/boards/pair
// Claims a pairing code a display registered and binds its serial.
func (b *BoardController) pairBoard(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.PairBoardRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	board, err := b.store.GetBoardByID(request.BoardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, api.Errorf(http.StatusNotFound, "board not found")
		}
		return nil, api.Errorf(http.StatusInternalServerError, "could not fetch board")
	}
	if board.CreatedBy != user.ID {
		return nil, api.Errorf(http.StatusForbidden, "board belongs to another user")
	}
	if board.Paired {
		return nil, api.Errorf(http.StatusConflict, "board is already paired")
	}

	serial, ok := redis.Get(ctx, "pairing:"+request.PairingCode)
	if !ok {
		return nil, api.Errorf(http.StatusNotFound, "pairing code expired or unknown")
	}

	if err := b.store.PairBoard(board.ID, serial); err != nil {
		log.Error().Err(err).Int("board_id", board.ID).Msg("[boards] could not pair board")
		return nil, api.Errorf(http.StatusInternalServerError, "could not pair board")
	}
	redis.Del(ctx, "pairing:"+request.PairingCode)

	paired, err := b.store.GetBoardByID(board.ID)
	if err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "could not fetch paired board")
	}
	log.Info().Int("board_id", board.ID).Str("serial", serial).Msg("[boards] board paired")
	return paired, nil
}

// POST /api/admin/boards/:id/publish
// On-demand timetable push, same path the nightly job takes.
func (b *BoardController) publishBoard(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	board, apiErr := b.ownedBoard(ctx, user)
	if apiErr != nil {
		return nil, apiErr
	}
	if !board.Paired || board.Serial == nil {
		return nil, api.Errorf(http.StatusConflict, "board is not paired")
	}

	if err := b.sched.PublishBoard(ctx, *board); err != nil {
		log.Error().Err(err).Int("board_id", board.ID).Msg("[boards] publish failed")
		return nil, api.Errorf(http.StatusBadGateway, "publish failed: "+err.Error())
	}
	return gin.H{"published": true}, nil
}
