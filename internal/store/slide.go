package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"durgamondir/internal/models"
)

type SlideStore struct {
	db *sql.DB
}

func NewSlideStore(db *sql.DB) *SlideStore {
	return &SlideStore{db: db}
}

const slideColumns = `id, title, subtitle, description, image, button_text, button_link,
	is_active, sort_order, created_at`

func scanSlide(row scanner) (*models.Slide, error) {
	var sl models.Slide
	err := row.Scan(&sl.ID, &sl.Title, &sl.Subtitle, &sl.Description, &sl.Image,
		&sl.ButtonText, &sl.ButtonLink, &sl.IsActive, &sl.Order, &sl.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sl, nil
}

func (s *SlideStore) query(ctx context.Context, query string, args ...any) ([]models.Slide, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slides []models.Slide
	for rows.Next() {
		sl, err := scanSlide(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slide: %w", err)
		}
		slides = append(slides, *sl)
	}
	return slides, rows.Err()
}

func (s *SlideStore) List(ctx context.Context) ([]models.Slide, error) {
	slides, err := s.query(ctx,
		`SELECT `+slideColumns+` FROM sliders ORDER BY sort_order ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	return slides, nil
}

// ListActive returns up to limit active slides in display order.
func (s *SlideStore) ListActive(ctx context.Context, limit int) ([]models.Slide, error) {
	slides, err := s.query(ctx, `
		SELECT `+slideColumns+` FROM sliders
		WHERE is_active ORDER BY sort_order ASC, created_at ASC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list active slides: %w", err)
	}
	return slides, nil
}

func (s *SlideStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Slide, error) {
	sl, err := scanSlide(s.db.QueryRowContext(ctx,
		`SELECT `+slideColumns+` FROM sliders WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find slide: %w", err)
	}
	return sl, nil
}

// Create expects Image to already hold the key of a normalized 1920x1080
// JPEG.
func (s *SlideStore) Create(ctx context.Context, sl *models.Slide) (*models.Slide, error) {
	created, err := scanSlide(s.db.QueryRowContext(ctx, `
		INSERT INTO sliders (title, subtitle, description, image, button_text, button_link, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+slideColumns,
		sl.Title, sl.Subtitle, sl.Description, sl.Image, sl.ButtonText, sl.ButtonLink, sl.IsActive, sl.Order,
	))
	if err != nil {
		return nil, fmt.Errorf("create slide: %w", err)
	}
	return created, nil
}

func (s *SlideStore) Update(ctx context.Context, sl *models.Slide) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE sliders SET title = $1, subtitle = $2, description = $3, image = $4,
			button_text = $5, button_link = $6, is_active = $7, sort_order = $8
		WHERE id = $9`,
		sl.Title, sl.Subtitle, sl.Description, sl.Image, sl.ButtonText, sl.ButtonLink, sl.IsActive, sl.Order, sl.ID,
	)
	if err != nil {
		return fmt.Errorf("update slide: %w", err)
	}
	return rowsAffected(res)
}

func (s *SlideStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sliders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete slide: %w", err)
	}
	return rowsAffected(res)
}
