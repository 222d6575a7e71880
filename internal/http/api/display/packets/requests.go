package packets

// REQUESTS FOR /api/display

type RegisterPairingCodeRequest struct {
	PairingCode string `json:"code" binding:"required"`
	Serial      string `json:"serial" binding:"required"`
}

type ConnectRequest struct {
	Serial string `json:"serial" binding:"required"`
}
