package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/deenbuddy/minaret/internal/db"
	"github.com/deenbuddy/minaret/internal/http/api"
	"github.com/deenbuddy/minaret/internal/http/api/app/packets"
	"github.com/deenbuddy/minaret/internal/http/middleware"
	"github.com/deenbuddy/minaret/internal/model"
)

type AccountController struct {
	jwtSecret string
	store     db.Store
}

func newAccountController(secret string, store db.Store) *AccountController {
	return &AccountController{jwtSecret: secret, store: store}
}

// AuthPublicModule mounts signup and login.
func AuthPublicModule(secret string, store db.Store) api.Module {
	ctl := newAccountController(secret, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/signup", ctl.userSignup)
		c.PUBLIC_POST("/auth/login", ctl.userLogin)
	})
}

// AuthSessionModule mounts the profile endpoints that require auth.
func AuthSessionModule(secret string, store db.Store) api.Module {
	ctl := newAccountController(secret, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/auth/current_profile", ctl.getCurrentProfile)
		c.PUT("/auth/current_profile", ctl.updateCurrentProfile)
	})
}

// POST /api/app/auth/signup
func (a *AccountController) userSignup(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SignupRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	if existing, _ := a.store.GetUserByEmail(request.Email); existing != nil {
		return nil, api.Errorf(http.StatusConflict, "email already registered")
	}

	hashed, err := middleware.HashPassword(request.Password)
	if err != nil {
		log.Error().Err(err).Msg("[auth] failed to hash password")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong, please try again")
	}

	userID, err := a.store.CreateUser(request.Email, hashed, request.Name)
	if err != nil {
		log.Error().Err(err).Str("email", request.Email).Msg("[auth] could not create user")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong, please try again")
	}

	token, err := middleware.GenerateJWT(userID, a.jwtSecret)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("[auth] could not generate JWT")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong, please try again")
	}

	return gin.H{"token": token}, nil
}

// POST /api/app/auth/login
func (a *AccountController) userLogin(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	user, err := a.store.GetUserByEmail(request.Email)
	if err != nil || !middleware.CheckPassword(user.HashedPassword, request.Password) {
		return nil, api.Errorf(http.StatusUnauthorized, middleware.ErrInvalidCredentials.Error())
	}

	token, err := middleware.GenerateJWT(user.ID, a.jwtSecret)
	if err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("[auth] could not generate JWT")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong, please try again")
	}

	return gin.H{"token": token}, nil
}

// GET /api/app/auth/current_profile
func (a *AccountController) getCurrentProfile(_ *gin.Context, user *model.User) (any, *api.APIError) {
	return mapProfile(user), nil
}

// PUT /api/app/auth/current_profile
func (a *AccountController) updateCurrentProfile(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.UpdateCurrentProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	if request.Email != user.Email {
		if other, _ := a.store.GetUserByEmail(request.Email); other != nil {
			return nil, api.Errorf(http.StatusConflict, "email already registered")
		}
	}

	if err := a.store.UpdateUserProfile(user.ID, request.Email, request.Name); err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("[auth] could not update profile")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong, please try again")
	}

	updated, err := a.store.GetUserByID(user.ID)
	if err != nil {
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong, please try again")
	}
	return mapProfile(updated), nil
}

func mapProfile(u *model.User) packets.ProfileResponse {
	return packets.ProfileResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}
