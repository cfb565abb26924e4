package model

import (
	"time"
)

// User represents an account — students by default, staff when IsStaff is set.
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsStaff      bool      `json:"is_staff"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserProfile carries per-user capability flags and presentation fields.
// Flags are resolved into a capability set once per request by middleware,
// never consulted ad hoc.
type UserProfile struct {
	UserID           int    `json:"user_id"`
	AvatarURL        string `json:"avatar_url"`
	CanManageUsers   bool   `json:"can_manage_users"`
	CanManageContent bool   `json:"can_manage_content"`
}

// Capability names as they appear in route guards.
const (
	CapabilityManageUsers   = "manage_users"
	CapabilityManageContent = "manage_content"
)

// Capabilities maps capability names resolved for the current request.
func (p *UserProfile) Capabilities() map[string]bool {
	return map[string]bool{
		CapabilityManageUsers:   p.CanManageUsers,
		CapabilityManageContent: p.CanManageContent,
	}
}

// LoginRequest is the payload for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// CreateUserRequest is the manager payload for creating an account.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=150"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	IsStaff  bool   `json:"is_staff"`
}

// UpdateUserRequest is the manager payload for updating an account.
type UpdateUserRequest struct {
	Name      string  `json:"name" binding:"omitempty,min=2,max=150"`
	Email     string  `json:"email" binding:"omitempty,email"`
	Password  string  `json:"password" binding:"omitempty,min=6"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,max=500"`
}

// UpdateCapabilitiesRequest toggles profile capability flags.
type UpdateCapabilitiesRequest struct {
	CanManageUsers   *bool `json:"can_manage_users"`
	CanManageContent *bool `json:"can_manage_content"`
}
