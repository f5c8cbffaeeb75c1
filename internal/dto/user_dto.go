package dto

import (
	"time"

	"github.com/fxbureau/fxbureau_backend/internal/core/domain"
)

// CreateUserRequest defines the structure for registering an operator.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=teller manager compliance"`
	BranchID string `json:"branchID" binding:"required"`
}

// UserResponse defines the structure for API responses containing user details.
type UserResponse struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	BranchID string `json:"branchID"`
	IsActive bool   `json:"isActive"`
}

// LoginRequest defines the structure for a login attempt.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// ToUserResponse converts a domain.User to a DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Username: u.Username,
		Name:     u.Name,
		Role:     string(u.Role),
		BranchID: u.BranchID,
		IsActive: u.IsActive,
	}
}
