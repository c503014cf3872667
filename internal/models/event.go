package models

import (
	"time"

	"github.com/google/uuid"

	"durgamondir/internal/timeline"
)

// Event is a scheduled temple event.
type Event struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	DateTime      time.Time `json:"date_time"`
	Location      string    `json:"location"`
	FeaturedImage string    `json:"featured_image"`
	IsFeatured    bool      `json:"is_featured"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsUpcoming reports whether the event starts strictly after now.
func (e Event) IsUpcoming(now time.Time) bool {
	return timeline.IsUpcoming(e.DateTime, now)
}
