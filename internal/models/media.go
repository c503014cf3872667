package models

import (
	"mime"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"durgamondir/internal/bangla"
)

// Media records an uploaded asset. The bytes live in the storage backend
// under Key; entities reference the asset by that key.
type Media struct {
	ID           uuid.UUID `json:"id"`
	Key          string    `json:"key"`
	ThumbKey     *string   `json:"thumb_key,omitempty"`
	OriginalName string    `json:"original_name"`
	ContentType  string    `json:"content_type"`
	SizeBytes    int64     `json:"size_bytes"`
	UploaderID   uuid.UUID `json:"uploader_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsImage reports whether the asset can be shown inline as a picture.
// Parameters such as "; charset" are ignored.
func (m *Media) IsImage() bool {
	mediaType, _, err := mime.ParseMediaType(m.ContentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "image/")
}

// PreviewKey is the key to show in listings: the thumbnail when one was
// generated, the asset itself otherwise.
func (m *Media) PreviewKey() string {
	if m.ThumbKey != nil && *m.ThumbKey != "" {
		return *m.ThumbKey
	}
	return m.Key
}

// Folder is the storage folder of the asset, e.g. "gallery/photos" or
// "slides". Assets at the root report "".
func (m *Media) Folder() string {
	dir := path.Dir(m.Key)
	if dir == "." {
		return ""
	}
	return dir
}

// HumanSize returns the file size with Bengali digits, e.g. "২.৩ MB".
func (m *Media) HumanSize() string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	var s string
	switch {
	case m.SizeBytes >= mb:
		s = strconv.FormatFloat(float64(m.SizeBytes)/mb, 'f', 1, 64) + " MB"
	case m.SizeBytes >= kb:
		s = strconv.FormatFloat(float64(m.SizeBytes)/kb, 'f', 0, 64) + " KB"
	default:
		s = strconv.FormatInt(m.SizeBytes, 10) + " B"
	}
	return bangla.Digits(s)
}
