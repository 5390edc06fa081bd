package auth

// LoginPayload represents the login request body.
type LoginPayload struct {
	Username string `json:"username" validate:"required,max=50,username"`
	Password string `json:"password" validate:"required,min=8,max=50"`
}

// SetupPayload represents the initial setup request body.
type SetupPayload struct {
	Username string `json:"username" validate:"required,max=50,username"`
	Password string `json:"password" validate:"required,min=8,max=50"`
}

// StatusResponse represents the auth status response.
type StatusResponse struct {
	NeedsSetup bool `json:"needs_setup"`
}

// MeResponse represents the current user response.
type MeResponse struct {
	ID       int     `json:"id"`
	Username string  `json:"username"`
	IsAdmin  bool    `json:"is_admin"`
	TotalFee float64 `json:"total_fee"`
}
