package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser     = "user"
	RoleVerifier = "verifier"
	RoleAdmin    = "admin"
)

// User represents an account in the system
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsValidRole reports whether role is one of user, verifier or admin.
func IsValidRole(role string) bool {
	switch role {
	case RoleUser, RoleVerifier, RoleAdmin:
		return true
	}
	return false
}

// NormalizeEmail returns the canonical form used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateRoleRequest is the body of PATCH /editUser/:id
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user verifier admin"`
}
