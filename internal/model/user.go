package model

import "time"

// Role values for UserProfile.Role
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Tier values for UserProfile.Tier
const (
	TierFree = "free"
	TierPaid = "paid"
)

// UserProfile represents an account with its credit balance.
type UserProfile struct {
	UserID      string    `db:"user_id" json:"user_id"`
	Email       string    `db:"email" json:"email"`
	DisplayName string    `db:"display_name" json:"display_name"`
	AvatarURL   string    `db:"avatar_url" json:"avatar_url"`
	Credits     int       `db:"credits" json:"credits"`
	Role        string    `db:"role" json:"role"`
	Tier        string    `db:"tier" json:"tier"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// IsAdmin reports whether the profile carries the admin role.
func (u *UserProfile) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AppMode gates whether the generation form accepts input.
type AppMode string

const (
	ModeExplore AppMode = "explore"
	ModeCreate  AppMode = "create"
)
