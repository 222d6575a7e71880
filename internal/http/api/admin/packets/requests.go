package packets

import "github.com/deenbuddy/minaret/internal/model"

// REQUESTS FOR /api/admin

type CreateGuideRequest struct {
	Title      string  `json:"title" binding:"required"`
	Prayer     string  `json:"prayer" binding:"required"`
	School     string  `json:"school" binding:"required"`
	Summary    *string `json:"summary"`
	Difficulty string  `json:"difficulty" binding:"required,oneof=beginner intermediate advanced"`
}

type UpdateGuideRequest struct {
	Title      *string `json:"title"`
	Prayer     *string `json:"prayer"`
	School     *string `json:"school"`
	Summary    *string `json:"summary"`
	Difficulty *string `json:"difficulty"`
	Published  *bool   `json:"published"`
}

type CreateGuideStepRequest struct {
	Title  string  `json:"title" binding:"required"`
	Body   string  `json:"body" binding:"required"`
	Arabic *string `json:"arabic"`
}

type UpdateGuideStepRequest struct {
	Title  *string `json:"title"`
	Body   *string `json:"body"`
	Arabic *string `json:"arabic"`
}

type ReorderStepsRequest struct {
	StepIDs []int `json:"step_ids" binding:"required,min=1"`
}

type ImportVersesRequest struct {
	Verses []model.Verse `json:"verses" binding:"required,min=1,dive"`
}

type CreateBoardRequest struct {
	Name        string  `json:"name" binding:"required"`
	City        *string `json:"city"`
	Latitude    float64 `json:"latitude" binding:"required"`
	Longitude   float64 `json:"longitude" binding:"required"`
	TzOffsetMin int     `json:"tz_offset_min"`
	Method      string  `json:"method"`
	School      string  `json:"school"`
	IqamaOffset int     `json:"iqama_offset"`
}

type UpdateBoardRequest struct {
	Name        *string  `json:"name"`
	City        *string  `json:"city"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	TzOffsetMin *int     `json:"tz_offset_min"`
	Method      *string  `json:"method"`
	School      *string  `json:"school"`
	IqamaOffset *int     `json:"iqama_offset"`
}

type PairBoardRequest struct {
	BoardID     int    `json:"board_id" binding:"required"`
	PairingCode string `json:"code" binding:"required"`
}
