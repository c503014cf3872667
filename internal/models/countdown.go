package models

import (
	"time"

	"github.com/google/uuid"

	"durgamondir/internal/bangla"
	"durgamondir/internal/timeline"
)

// Countdown defaults.
const (
	DefaultCountdownTitle = "দুর্গা পূজা"
	DefaultMessageBefore  = "মা আসছে"
	DefaultMessageAfter   = "দিন পরে"
)

// Countdown drives the "days until puja" homepage widget.
type Countdown struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	TargetDate      time.Time `json:"target_date"`
	BackgroundImage string    `json:"background_image"`
	IsActive        bool      `json:"is_active"`
	MessageBefore   string    `json:"message_before"`
	MessageAfter    string    `json:"message_after"`
	CreatedAt       time.Time `json:"created_at"`
}

// DaysRemaining returns whole days left until the target, never negative.
func (c Countdown) DaysRemaining(now time.Time) int {
	return timeline.DaysRemaining(c.TargetDate, now)
}

// IsLive reports whether the widget should be shown.
func (c Countdown) IsLive(now time.Time) bool {
	return timeline.IsCountdownLive(c.IsActive, c.TargetDate, now)
}

// PujaDay is one day of the puja calendar. Date carries no time of day.
type PujaDay struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
}

// ShortDate renders the date as "{day} {month}" in Bengali.
func (p PujaDay) ShortDate() string {
	return bangla.ShortDate(p.Date)
}

// LongDate renders the date as "{weekday} | {day} {month}, {year}" in Bengali.
func (p PujaDay) LongDate() string {
	return bangla.LongDate(p.Date)
}
