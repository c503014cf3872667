package models

import (
	"time"

	"github.com/google/uuid"

	"durgamondir/internal/youtube"
)

// Album groups gallery photos. PhotoCount is filled by list queries.
type Album struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CoverImage  string    `json:"cover_image"`
	IsFeatured  bool      `json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
	PhotoCount  int       `json:"photo_count"`
}

// Photo belongs to exactly one album.
type Photo struct {
	ID          uuid.UUID `json:"id"`
	AlbumID     uuid.UUID `json:"album_id"`
	Title       string    `json:"title"`
	Image       string    `json:"image"`
	Thumb       *string   `json:"thumb,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// GalleryKind distinguishes photo and video showcase items.
type GalleryKind string

const (
	GalleryPhoto GalleryKind = "photo"
	GalleryVideo GalleryKind = "video"
)

// Valid reports whether k is a known gallery kind.
func (k GalleryKind) Valid() bool {
	return k == GalleryPhoto || k == GalleryVideo
}

// GalleryItem is a standalone showcase entry shown on the homepage.
type GalleryItem struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Kind        GalleryKind `json:"gallery_type"`
	Image       string      `json:"image"`
	VideoURL    string      `json:"video_url"`
	IsFeatured  bool        `json:"is_featured"`
	CreatedAt   time.Time   `json:"created_at"`
}

// EmbedURL returns the embeddable player URL for a video item.
func (g GalleryItem) EmbedURL() string {
	return youtube.EmbedURL(g.VideoURL)
}
