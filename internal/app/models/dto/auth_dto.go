package dto

import (
	"github.com/demir/classhub/internal/app/models"
)

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Email     string          `json:"email" binding:"required,email" example:"teacher@school.edu"`
	Password  string          `json:"password" binding:"required,min=8" example:"passw0rd"`
	FirstName string          `json:"firstName" binding:"required,min=2,max=100" example:"Jane"`
	LastName  string          `json:"lastName" binding:"required,min=2,max=100" example:"Doe"`
	RoleType  models.RoleType `json:"roleType" binding:"required,oneof=TEACHER STUDENT" example:"TEACHER"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents a refresh token exchange request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int    `json:"expiresIn" example:"3600"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int    `json:"refreshTokenExpiresIn,omitempty"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	RoleType  string `json:"roleType" enums:"TEACHER,STUDENT"`
	IsActive  bool   `json:"isActive"`
}

// FromUser converts a user model to its response DTO
func FromUser(user *models.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RoleType:  string(user.RoleType),
		IsActive:  user.IsActive,
	}
}
