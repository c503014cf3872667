package models

import (
	"time"

	"github.com/google/uuid"
)

// Page is a free-form content page addressed by its slug. Pages may nest
// under a parent; deleting a parent deletes its children.
type Page struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Content         string     `json:"content"`
	MetaDescription string     `json:"meta_description"`
	FeaturedImage   string     `json:"featured_image"`
	IsPublished     bool       `json:"is_published"`
	ShowInMenu      bool       `json:"show_in_menu"`
	MenuOrder       int        `json:"menu_order"`
	ParentID        *uuid.UUID `json:"parent_id"`
	AuthorID        uuid.UUID  `json:"author_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
