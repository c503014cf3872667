// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"durgamondir/internal/models"
)

// MediaKind narrows a library listing by content type.
type MediaKind string

const (
	MediaAll       MediaKind = ""
	MediaImages    MediaKind = "image"
	MediaDocuments MediaKind = "document"
)

// ParseMediaKind maps a query-string value to a kind; anything unknown
// lists everything.
func ParseMediaKind(s string) MediaKind {
	switch k := MediaKind(s); k {
	case MediaImages, MediaDocuments:
		return k
	default:
		return MediaAll
	}
}

// where returns the SQL condition selecting the kind.
func (k MediaKind) where() string {
	switch k {
	case MediaImages:
		return `content_type LIKE 'image/%'`
	case MediaDocuments:
		return `content_type NOT LIKE 'image/%'`
	default:
		return `TRUE`
	}
}

// MediaStore records files uploaded to the back-office library.
type MediaStore struct {
	db *sql.DB
}

func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

const mediaColumns = `id, storage_key, thumb_key, original_name, content_type,
	size_bytes, uploader_id, created_at`

func scanMedia(row scanner) (*models.Media, error) {
	var m models.Media
	if err := row.Scan(&m.ID, &m.Key, &m.ThumbKey, &m.OriginalName, &m.ContentType,
		&m.SizeBytes, &m.UploaderID, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MediaStore) Create(ctx context.Context, m *models.Media) (*models.Media, error) {
	created, err := scanMedia(s.db.QueryRowContext(ctx, `
		INSERT INTO media (storage_key, thumb_key, original_name, content_type, size_bytes, uploader_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+mediaColumns,
		m.Key, m.ThumbKey, m.OriginalName, m.ContentType, m.SizeBytes, m.UploaderID,
	))
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return created, nil
}

func (s *MediaStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	m, err := scanMedia(s.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find media: %w", err)
	}
	return m, nil
}

// List returns one page of the library, newest first.
func (s *MediaStore) List(ctx context.Context, kind MediaKind, limit, offset int) ([]models.Media, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+mediaColumns+` FROM media WHERE `+kind.where()+`
		ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	defer rows.Close()

	var items []models.Media
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// Delete removes a record and returns it so the caller can drop the
// stored objects.
func (s *MediaStore) Delete(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	m, err := scanMedia(s.db.QueryRowContext(ctx,
		`DELETE FROM media WHERE id = $1 RETURNING `+mediaColumns, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete media: %w", err)
	}
	return m, nil
}

func (s *MediaStore) Count(ctx context.Context) (int, error) {
	return s.CountKind(ctx, MediaAll)
}

func (s *MediaStore) CountKind(ctx context.Context, kind MediaKind) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM media WHERE `+kind.where()).Scan(&n); err != nil {
		return 0, fmt.Errorf("count media: %w", err)
	}
	return n, nil
}

// TotalBytes is the summed size of every library upload.
func (s *MediaStore) TotalBytes(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(size_bytes), 0) FROM media`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sum media size: %w", err)
	}
	return n, nil
}
