package packets

// REQUESTS FOR /api/app

type SignupRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Name     *string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateCurrentProfileRequest struct {
	Email string  `json:"email" binding:"required,email"`
	Name  *string `json:"name"`
}

type UpdateSettingsRequest struct {
	Method      *string  `json:"method"`
	School      *string  `json:"school"`
	HighLatRule *string  `json:"high_lat_rule"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	City        *string  `json:"city"`
	TzOffsetMin *int     `json:"tz_offset_min"`
}

type CreateBookmarkRequest struct {
	Surah int     `json:"surah" binding:"required,min=1,max=114"`
	Ayah  int     `json:"ayah" binding:"required,min=1"`
	Note  *string `json:"note"`
}

type CreateDhikrSessionRequest struct {
	PresetID int `json:"preset_id" binding:"required"`
	Target   int `json:"target"`
	Count    int `json:"count"`
}

type IncrementDhikrRequest struct {
	Delta int `json:"delta"`
}
