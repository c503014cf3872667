package models

import (
	"time"

	"github.com/google/uuid"
)

// Slide is a homepage hero slider entry. Its image is always stored as a
// 1920x1080 JPEG.
type Slide struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	ButtonText  string    `json:"button_text"`
	ButtonLink  string    `json:"button_link"`
	IsActive    bool      `json:"is_active"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
}
