package model

import "time"

// GeneratedImage is one generation result. ImageURL always holds a
// reference to object storage, never inline bytes.
type GeneratedImage struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Prompt    string    `db:"prompt" json:"prompt"`
	Style     string    `db:"style" json:"style,omitempty"`
	ImageURL  string    `db:"image_url" json:"image_url"`
	IsPublic  bool      `db:"is_public" json:"is_public"`
	Likes     int       `db:"likes" json:"likes"`
	UserEmail string    `db:"user_email" json:"user_email,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Feed is the community display list.
type Feed struct {
	Images []GeneratedImage `json:"images"`
	Live   bool             `json:"live"`
}
