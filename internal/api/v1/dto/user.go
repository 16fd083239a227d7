package dto

import "time"

// UserResponseDTO is returned in API responses
type UserResponseDTO struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Credits     int       `json:"credits"`
	Role        string    `json:"role"`
	Tier        string    `json:"tier"`
	CreatedAt   time.Time `json:"created_at"`
}
