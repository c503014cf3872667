package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"durgamondir/internal/models"
)

type CountdownStore struct {
	db *sql.DB
}

func NewCountdownStore(db *sql.DB) *CountdownStore {
	return &CountdownStore{db: db}
}

const countdownColumns = `id, title, target_date, background_image, is_active,
	message_before, message_after, created_at`

func scanCountdown(row scanner) (*models.Countdown, error) {
	var c models.Countdown
	err := row.Scan(&c.ID, &c.Title, &c.TargetDate, &c.BackgroundImage, &c.IsActive,
		&c.MessageBefore, &c.MessageAfter, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CountdownStore) List(ctx context.Context) ([]models.Countdown, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+countdownColumns+` FROM countdowns ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list countdowns: %w", err)
	}
	defer rows.Close()

	var out []models.Countdown
	for rows.Next() {
		c, err := scanCountdown(rows)
		if err != nil {
			return nil, fmt.Errorf("scan countdown: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// FirstActive returns the oldest active countdown. The home page shows at
// most one.
func (s *CountdownStore) FirstActive(ctx context.Context) (*models.Countdown, error) {
	c, err := scanCountdown(s.db.QueryRowContext(ctx, `
		SELECT `+countdownColumns+` FROM countdowns
		WHERE is_active ORDER BY created_at ASC, id ASC LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("first active countdown: %w", err)
	}
	return c, nil
}

func (s *CountdownStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Countdown, error) {
	c, err := scanCountdown(s.db.QueryRowContext(ctx,
		`SELECT `+countdownColumns+` FROM countdowns WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find countdown: %w", err)
	}
	return c, nil
}

// Create applies the Bengali defaults for empty title and messages.
func (s *CountdownStore) Create(ctx context.Context, c *models.Countdown) (*models.Countdown, error) {
	applyCountdownDefaults(c)
	created, err := scanCountdown(s.db.QueryRowContext(ctx, `
		INSERT INTO countdowns (title, target_date, background_image, is_active, message_before, message_after)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+countdownColumns,
		c.Title, c.TargetDate, c.BackgroundImage, c.IsActive, c.MessageBefore, c.MessageAfter,
	))
	if err != nil {
		return nil, fmt.Errorf("create countdown: %w", err)
	}
	return created, nil
}

func (s *CountdownStore) Update(ctx context.Context, c *models.Countdown) error {
	applyCountdownDefaults(c)
	res, err := s.db.ExecContext(ctx, `
		UPDATE countdowns SET title = $1, target_date = $2, background_image = $3,
			is_active = $4, message_before = $5, message_after = $6
		WHERE id = $7`,
		c.Title, c.TargetDate, c.BackgroundImage, c.IsActive, c.MessageBefore, c.MessageAfter, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update countdown: %w", err)
	}
	return rowsAffected(res)
}

func (s *CountdownStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM countdowns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete countdown: %w", err)
	}
	return rowsAffected(res)
}

func applyCountdownDefaults(c *models.Countdown) {
	if c.Title == "" {
		c.Title = models.DefaultCountdownTitle
	}
	if c.MessageBefore == "" {
		c.MessageBefore = models.DefaultMessageBefore
	}
	if c.MessageAfter == "" {
		c.MessageAfter = models.DefaultMessageAfter
	}
}

// PujaDayStore handles the festival day schedule.
type PujaDayStore struct {
	db *sql.DB
}

func NewPujaDayStore(db *sql.DB) *PujaDayStore {
	return &PujaDayStore{db: db}
}

const pujaDayColumns = `id, title, date, image, description, is_active, sort_order, created_at`

func scanPujaDay(row scanner) (*models.PujaDay, error) {
	var p models.PujaDay
	err := row.Scan(&p.ID, &p.Title, &p.Date, &p.Image, &p.Description, &p.IsActive, &p.Order, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PujaDayStore) query(ctx context.Context, where string) ([]models.PujaDay, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+pujaDayColumns+` FROM puja_days`+where+` ORDER BY sort_order ASC, date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []models.PujaDay
	for rows.Next() {
		p, err := scanPujaDay(rows)
		if err != nil {
			return nil, fmt.Errorf("scan puja day: %w", err)
		}
		days = append(days, *p)
	}
	return days, rows.Err()
}

func (s *PujaDayStore) List(ctx context.Context) ([]models.PujaDay, error) {
	days, err := s.query(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list puja days: %w", err)
	}
	return days, nil
}

// ListActive returns active days ordered by (order, date).
func (s *PujaDayStore) ListActive(ctx context.Context) ([]models.PujaDay, error) {
	days, err := s.query(ctx, " WHERE is_active")
	if err != nil {
		return nil, fmt.Errorf("list active puja days: %w", err)
	}
	return days, nil
}

func (s *PujaDayStore) FindByID(ctx context.Context, id uuid.UUID) (*models.PujaDay, error) {
	p, err := scanPujaDay(s.db.QueryRowContext(ctx,
		`SELECT `+pujaDayColumns+` FROM puja_days WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find puja day: %w", err)
	}
	return p, nil
}

func (s *PujaDayStore) Create(ctx context.Context, p *models.PujaDay) (*models.PujaDay, error) {
	created, err := scanPujaDay(s.db.QueryRowContext(ctx, `
		INSERT INTO puja_days (title, date, image, description, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+pujaDayColumns,
		p.Title, p.Date, p.Image, p.Description, p.IsActive, p.Order,
	))
	if err != nil {
		return nil, fmt.Errorf("create puja day: %w", err)
	}
	return created, nil
}

func (s *PujaDayStore) Update(ctx context.Context, p *models.PujaDay) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE puja_days SET title = $1, date = $2, image = $3, description = $4,
			is_active = $5, sort_order = $6
		WHERE id = $7`,
		p.Title, p.Date, p.Image, p.Description, p.IsActive, p.Order, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update puja day: %w", err)
	}
	return rowsAffected(res)
}

func (s *PujaDayStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM puja_days WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete puja day: %w", err)
	}
	return rowsAffected(res)
}
