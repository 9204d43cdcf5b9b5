package models

import "time"

// Role is the closed set of user roles in the portal
type Role string

// User role constants
const (
	RoleAdmin    Role = "admin"
	RoleUser     Role = "user"
	RoleEngineer Role = "engineer"
	RoleAnalyst  Role = "analyst"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleEngineer, RoleAnalyst:
		return true
	}
	return false
}

// User represents a registered user in the system
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"-"`
}

// RegisterRequest represents a registration request body
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest represents a login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
