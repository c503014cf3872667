package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"durgamondir/internal/models"
)

// AlbumStore handles gallery albums. Photo counts are computed on read.
type AlbumStore struct {
	db *sql.DB
}

func NewAlbumStore(db *sql.DB) *AlbumStore {
	return &AlbumStore{db: db}
}

const albumSelect = `
	SELECT a.id, a.title, a.description, a.cover_image, a.is_featured, a.created_at,
		(SELECT COUNT(*) FROM gallery_photos p WHERE p.album_id = a.id)
	FROM gallery_albums a`

func scanAlbum(row scanner) (*models.Album, error) {
	var a models.Album
	err := row.Scan(&a.ID, &a.Title, &a.Description, &a.CoverImage, &a.IsFeatured, &a.CreatedAt, &a.PhotoCount)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns one page of albums, newest first.
func (s *AlbumStore) List(ctx context.Context, limit, offset int) ([]models.Album, error) {
	rows, err := s.db.QueryContext(ctx,
		albumSelect+` ORDER BY a.created_at DESC, a.id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()

	var albums []models.Album
	for rows.Next() {
		a, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		albums = append(albums, *a)
	}
	return albums, rows.Err()
}

func (s *AlbumStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM gallery_albums`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count albums: %w", err)
	}
	return n, nil
}

func (s *AlbumStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Album, error) {
	a, err := scanAlbum(s.db.QueryRowContext(ctx, albumSelect+` WHERE a.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find album: %w", err)
	}
	return a, nil
}

func (s *AlbumStore) Create(ctx context.Context, a *models.Album) (*models.Album, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO gallery_albums (title, description, cover_image, is_featured)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		a.Title, a.Description, a.CoverImage, a.IsFeatured,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create album: %w", err)
	}
	a.PhotoCount = 0
	return a, nil
}

func (s *AlbumStore) Update(ctx context.Context, a *models.Album) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE gallery_albums SET title = $1, description = $2, cover_image = $3, is_featured = $4
		WHERE id = $5`,
		a.Title, a.Description, a.CoverImage, a.IsFeatured, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update album: %w", err)
	}
	return rowsAffected(res)
}

// Delete removes the album; its photos are removed by the foreign key
// cascade. Callers that need to clean up stored images should list the
// photos first.
func (s *AlbumStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM gallery_albums WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	return rowsAffected(res)
}

// PhotoStore handles photos inside albums.
type PhotoStore struct {
	db *sql.DB
}

func NewPhotoStore(db *sql.DB) *PhotoStore {
	return &PhotoStore{db: db}
}

const photoColumns = `id, album_id, title, image, thumb, description, created_at`

func scanPhoto(row scanner) (*models.Photo, error) {
	var p models.Photo
	err := row.Scan(&p.ID, &p.AlbumID, &p.Title, &p.Image, &p.Thumb, &p.Description, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByAlbum returns photos in upload order. The id tiebreak keeps
// pagination stable for photos created in the same instant.
func (s *PhotoStore) ListByAlbum(ctx context.Context, albumID uuid.UUID, limit, offset int) ([]models.Photo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+photoColumns+` FROM gallery_photos
		WHERE album_id = $1
		ORDER BY created_at ASC, id ASC
		LIMIT $2 OFFSET $3`, albumID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	var photos []models.Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, *p)
	}
	return photos, rows.Err()
}

func (s *PhotoStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Photo, error) {
	p, err := scanPhoto(s.db.QueryRowContext(ctx,
		`SELECT `+photoColumns+` FROM gallery_photos WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find photo: %w", err)
	}
	return p, nil
}

func (s *PhotoStore) Create(ctx context.Context, p *models.Photo) (*models.Photo, error) {
	created, err := scanPhoto(s.db.QueryRowContext(ctx, `
		INSERT INTO gallery_photos (album_id, title, image, thumb, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+photoColumns,
		p.AlbumID, p.Title, p.Image, p.Thumb, p.Description,
	))
	if isForeignKeyViolation(err) {
		return nil, fmt.Errorf("create photo: %w", ErrInvalidReference)
	}
	if err != nil {
		return nil, fmt.Errorf("create photo: %w", err)
	}
	return created, nil
}

func (s *PhotoStore) Update(ctx context.Context, p *models.Photo) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE gallery_photos SET title = $1, description = $2 WHERE id = $3`,
		p.Title, p.Description, p.ID)
	if err != nil {
		return fmt.Errorf("update photo: %w", err)
	}
	return rowsAffected(res)
}

func (s *PhotoStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM gallery_photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	return rowsAffected(res)
}

// GalleryStore handles standalone gallery items (single photos and videos).
type GalleryStore struct {
	db *sql.DB
}

func NewGalleryStore(db *sql.DB) *GalleryStore {
	return &GalleryStore{db: db}
}

const galleryColumns = `id, title, description, gallery_type, image, video_url, is_featured, created_at`

func scanGalleryItem(row scanner) (*models.GalleryItem, error) {
	var g models.GalleryItem
	err := row.Scan(&g.ID, &g.Title, &g.Description, &g.Kind, &g.Image, &g.VideoURL, &g.IsFeatured, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *GalleryStore) queryItems(ctx context.Context, query string, args ...any) ([]models.GalleryItem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.GalleryItem
	for rows.Next() {
		g, err := scanGalleryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan gallery item: %w", err)
		}
		items = append(items, *g)
	}
	return items, rows.Err()
}

func (s *GalleryStore) List(ctx context.Context) ([]models.GalleryItem, error) {
	items, err := s.queryItems(ctx,
		`SELECT `+galleryColumns+` FROM gallery_items ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list gallery items: %w", err)
	}
	return items, nil
}

// ListFeatured returns up to limit featured items, newest first.
func (s *GalleryStore) ListFeatured(ctx context.Context, limit int) ([]models.GalleryItem, error) {
	items, err := s.queryItems(ctx, `
		SELECT `+galleryColumns+` FROM gallery_items
		WHERE is_featured ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list featured gallery items: %w", err)
	}
	return items, nil
}

func (s *GalleryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.GalleryItem, error) {
	g, err := scanGalleryItem(s.db.QueryRowContext(ctx,
		`SELECT `+galleryColumns+` FROM gallery_items WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find gallery item: %w", err)
	}
	return g, nil
}

func (s *GalleryStore) Create(ctx context.Context, g *models.GalleryItem) (*models.GalleryItem, error) {
	created, err := scanGalleryItem(s.db.QueryRowContext(ctx, `
		INSERT INTO gallery_items (title, description, gallery_type, image, video_url, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+galleryColumns,
		g.Title, g.Description, g.Kind, g.Image, g.VideoURL, g.IsFeatured,
	))
	if err != nil {
		return nil, fmt.Errorf("create gallery item: %w", err)
	}
	return created, nil
}

func (s *GalleryStore) Update(ctx context.Context, g *models.GalleryItem) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE gallery_items SET title = $1, description = $2, gallery_type = $3,
			image = $4, video_url = $5, is_featured = $6
		WHERE id = $7`,
		g.Title, g.Description, g.Kind, g.Image, g.VideoURL, g.IsFeatured, g.ID,
	)
	if err != nil {
		return fmt.Errorf("update gallery item: %w", err)
	}
	return rowsAffected(res)
}

func (s *GalleryStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM gallery_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete gallery item: %w", err)
	}
	return rowsAffected(res)
}
