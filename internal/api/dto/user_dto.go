package dto

import (
	"time"

	"github.com/spec-kit/riding-hub/internal/domain"
)

// RegisterRequest payload for self-signup.
type RegisterRequest struct {
	Name       string      `json:"name"`
	Password   string      `json:"password"`
	Role       domain.Role `json:"role"`
	Email      *string     `json:"email"`
	RememberMe bool        `json:"remember_me"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// UserResponse is a member record with credentials stripped.
type UserResponse struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	DisplayName  string      `json:"display_name"`
	Email        *string     `json:"email,omitempty"`
	Role         domain.Role `json:"role"`
	ProfilePhoto *string     `json:"profile_photo,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ResetPasswordRequest admin payload.
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

// ProfilePhotoRequest carries a data-URL encoded image.
type ProfilePhotoRequest struct {
	Photo string `json:"photo"`
}

// AddUserRequest admin payload for provisioning roster accounts.
type AddUserRequest struct {
	DisplayName string      `json:"display_name"`
	Role        domain.Role `json:"role"`
	Email       *string     `json:"email"`
}
