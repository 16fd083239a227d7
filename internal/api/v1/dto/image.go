package dto

import "time"

// GenerateRequestDTO is an incoming generation request. Mode mirrors the
// client's session gate; anything but "create" is refused before any
// external call.
type GenerateRequestDTO struct {
	Mode   string `json:"mode" validate:"omitempty,oneof=explore create"`
	Prompt string `json:"prompt"`
	Style  string `json:"style"`
}

// ImageResponseDTO is a generation record in API responses.
type ImageResponseDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Prompt    string    `json:"prompt"`
	Style     string    `json:"style,omitempty"`
	ImageURL  string    `json:"image_url"`
	IsPublic  bool      `json:"is_public"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedResponseDTO is the community display list.
type FeedResponseDTO struct {
	Live   bool               `json:"live"`
	Images []ImageResponseDTO `json:"images"`
}

// EnhancePromptRequestDTO asks for a rewritten prompt.
type EnhancePromptRequestDTO struct {
	Prompt string `json:"prompt" validate:"required"`
}

// EnhancePromptResponseDTO carries the rewritten (or original) prompt.
type EnhancePromptResponseDTO struct {
	Prompt string `json:"prompt"`
}
