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

// User is the public projection of an account: what login returns and what
// the session record mirrors. It never carries the password.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
	IsDemo bool   `json:"isDemo,omitempty"`
}

// UserRecord is the locally persisted account record. The password is kept
// as typed: the local collection is a demo-grade store for seeded accounts
// and offline registrations, real accounts live on the portal service.
type UserRecord struct {
	User
	Password         string     `json:"password"`
	ResetToken       string     `json:"resetToken,omitempty"`
	ResetTokenExpiry *time.Time `json:"resetTokenExpiry,omitempty"`
}

// ProfileUpdate carries the optional fields of a profile update.
// Nil fields are left unchanged.
type ProfileUpdate struct {
	Name   *string
	Avatar *string
}
