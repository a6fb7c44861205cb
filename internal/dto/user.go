package dto

// LoginRequest is the JSON body for POST /api/login.
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// RegisterRequest is the JSON body for POST /api/register and the form
// body for POST /reg.
type RegisterRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// TokenResponse carries the signed bearer token issued at login.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse is returned when user info is needed (e.g. after registration).
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
