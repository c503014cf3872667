package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"durgamondir/internal/models"
)

type EventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

const eventColumns = `id, title, description, date_time, location, featured_image,
	is_featured, is_active, created_at`

func scanEvent(row scanner) (*models.Event, error) {
	var e models.Event
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.DateTime, &e.Location, &e.FeaturedImage,
		&e.IsFeatured, &e.IsActive, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *EventStore) queryEvents(ctx context.Context, query string, args ...any) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// List returns all events for the back office, newest first.
func (s *EventStore) List(ctx context.Context) ([]models.Event, error) {
	events, err := s.queryEvents(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY date_time DESC`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// ListActive returns active events ordered by start time. The public
// listing re-orders them per filter in memory.
func (s *EventStore) ListActive(ctx context.Context) ([]models.Event, error) {
	events, err := s.queryEvents(ctx,
		`SELECT `+eventColumns+` FROM events WHERE is_active ORDER BY date_time ASC`)
	if err != nil {
		return nil, fmt.Errorf("list active events: %w", err)
	}
	return events, nil
}

// Next returns up to limit active events starting after now, soonest first.
func (s *EventStore) Next(ctx context.Context, now time.Time, limit int) ([]models.Event, error) {
	events, err := s.queryEvents(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE is_active AND date_time > $1
		ORDER BY date_time ASC LIMIT $2`, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list next events: %w", err)
	}
	return events, nil
}

func (s *EventStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	e, err := scanEvent(s.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	return e, nil
}

func (s *EventStore) Create(ctx context.Context, e *models.Event) (*models.Event, error) {
	created, err := scanEvent(s.db.QueryRowContext(ctx, `
		INSERT INTO events (title, description, date_time, location, featured_image, is_featured, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+eventColumns,
		e.Title, e.Description, e.DateTime, e.Location, e.FeaturedImage, e.IsFeatured, e.IsActive,
	))
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return created, nil
}

func (s *EventStore) Update(ctx context.Context, e *models.Event) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE events SET title = $1, description = $2, date_time = $3, location = $4,
			featured_image = $5, is_featured = $6, is_active = $7
		WHERE id = $8`,
		e.Title, e.Description, e.DateTime, e.Location, e.FeaturedImage, e.IsFeatured, e.IsActive, e.ID,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return rowsAffected(res)
}

func (s *EventStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return rowsAffected(res)
}

func (s *EventStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
