package dto

import (
	"github.com/SscSPs/payhub_backend/internal/core/domain"
	"github.com/SscSPs/payhub_backend/internal/utils"
)

// RegisterUserRequest defines the data needed to sign up.
type RegisterUserRequest struct {
	Username  string  `json:"username" binding:"required,min=3,max=50"`
	Password  string  `json:"password" binding:"required,min=6"`
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

// LoginRequest defines the credentials for password login.
// RecaptchaToken is verified only when present.
type LoginRequest struct {
	Username       string `json:"username" binding:"required"`
	Password       string `json:"password" binding:"required"`
	RecaptchaToken string `json:"recaptchaToken"`
}

// UpdateProfileRequest defines the profile fields a user may change.
// Nil fields are left untouched.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,min=1"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

// UserResponse is the public view of a user. The password hash never leaves the service.
type UserResponse struct {
	UserID    string  `json:"userID"`
	Username  string  `json:"username"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
}

// ProfileResponse is the user plus the current balance.
type ProfileResponse struct {
	UserResponse
	Balance string `json:"balance"`
}

// ToUserResponse converts a domain.User to UserResponse
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Phone:     user.Phone,
		Address:   user.Address,
	}
}

// ToProfileResponse combines a user and its account
func ToProfileResponse(user *domain.User, acc *domain.Account) ProfileResponse {
	return ProfileResponse{
		UserResponse: ToUserResponse(user),
		Balance:      utils.FormatAmount(acc.Balance),
	}
}
