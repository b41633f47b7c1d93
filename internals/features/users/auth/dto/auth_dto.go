package dto

import (
	"time"

	authModel "amanah_backend/internals/features/users/auth/model"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// Admin user management

type CreateUserRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=user admin superadmin"`
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=100"`
	Role     *string `json:"role" validate:"omitempty,oneof=user admin superadmin"`
	IsActive *bool   `json:"is_active"`
}

type UserResponse struct {
	ID            uuid.UUID  `json:"id"`
	FullName      string     `json:"full_name"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	IsActive      bool       `json:"is_active"`
	EmailVerified bool       `json:"email_verified"`
	HasGoogle     bool       `json:"has_google"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

func ToUserResponse(u authModel.UserModel) UserResponse {
	return UserResponse{
		ID:            u.ID,
		FullName:      u.FullName,
		Email:         u.Email,
		Role:          u.Role,
		IsActive:      u.IsActive,
		EmailVerified: u.EmailVerified,
		HasGoogle:     u.GoogleID != nil,
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
	}
}
