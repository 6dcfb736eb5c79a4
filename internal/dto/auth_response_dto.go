package dto

import "time"

// LoginResponse represents the response for a successful login or registration.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// GoogleExchangeCodeRequest carries the authorization code from the Google redirect.
type GoogleExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
