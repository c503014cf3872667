package models

import (
	"time"

	"github.com/google/uuid"
)

// Directory identifies one of the two member listings. Both share the
// same record shape but live in separate tables.
type Directory string

const (
	DirectoryCommittee Directory = "committee"
	DirectorySangha    Directory = "durga_sangha"
)

// DefaultCategory is the category label applied when none is given.
func (d Directory) DefaultCategory() string {
	if d == DirectorySangha {
		return "দুর্গা সংঘ"
	}
	return "কার্যনির্বাহী কমিটি"
}

// Title is the public heading of the directory page.
func (d Directory) Title() string {
	if d == DirectorySangha {
		return "দুর্গা সংঘ"
	}
	return "কমিটি"
}

// Member is a person listed in a directory.
type Member struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Position      string    `json:"position"`
	Category      string    `json:"category"`
	CategoryOrder int       `json:"category_order"`
	Image         string    `json:"image"`
	Phone         string    `json:"phone"`
	Description   string    `json:"description"`
	Order         int       `json:"order"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}
