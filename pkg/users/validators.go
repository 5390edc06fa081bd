package users

// RegisterPayload represents the request body for registering a user.
type RegisterPayload struct {
	Username string `json:"username" validate:"required,max=50,username"`
	Password string `json:"password" validate:"required,min=8,max=50"`
}

// ChangePasswordPayload represents the request body for changing a password.
type ChangePasswordPayload struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=50"`
}

// ListUsersQuery represents the query parameters for listing users.
type ListUsersQuery struct {
	Limit  int `query:"limit" default:"50"`
	Offset int `query:"offset" default:"0"`
}
