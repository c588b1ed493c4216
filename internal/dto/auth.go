package dto

import "time"

// LoginRequest carries username/password credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the access token and user context after a successful login.
type LoginResponse struct {
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
	UserID      string    `json:"userID"`
	TempleID    string    `json:"templeID"`
	Role        string    `json:"role"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName,omitempty"`
}

// RefreshTokenRequest is used when the refresh token is sent in the body
// instead of the cookie.
type RefreshTokenRequest struct {
	UserID       string `json:"userID" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}
