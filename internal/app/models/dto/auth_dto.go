package dto

import "time"

// RegisterRequest represents a signup request
type RegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FirstName    string `json:"firstName" binding:"required"`
	LastName     string `json:"lastName" binding:"required"`
	Role         string `json:"role" binding:"required"`
	DepartmentID *int64 `json:"departmentId,omitempty"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the issued token pair
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int    `json:"expiresIn" example:"3600"`
	RefreshExpiresIn int    `json:"refreshExpiresIn" example:"2592000"`
	TokenType        string `json:"tokenType" example:"Bearer"`
}

// LoginResponse combines tokens with the authenticated profile
type LoginResponse struct {
	Tokens TokenResponse       `json:"tokens"`
	User   UserProfileResponse `json:"user"`
}

// UserProfileResponse represents a user profile in API responses
type UserProfileResponse struct {
	ID           int64      `json:"id" example:"1"`
	Email        string     `json:"email" example:"user@campus.edu"`
	FirstName    string     `json:"firstName" example:"John"`
	LastName     string     `json:"lastName" example:"Doe"`
	Role         string     `json:"role" example:"STUDENT" enums:"STUDENT,LECTURER,ADMIN"`
	DepartmentID *int64     `json:"departmentId,omitempty"`
	Department   string     `json:"department,omitempty" example:"Computer Engineering"`
	IsOnline     bool       `json:"isOnline"`
	LastSeenAt   *time.Time `json:"lastSeenAt,omitempty"`
}

// ChangePasswordRequest represents a self-service password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// ResetPasswordRequest represents an admin-initiated password reset
type ResetPasswordRequest struct {
	UserID      int64  `json:"userId" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// StatusUpdateRequest toggles the requester's presence flag
type StatusUpdateRequest struct {
	Online bool `json:"online"`
}
