package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"durgamondir/internal/models"
)

// ContactStore holds messages from the public contact form. Messages are
// write-once; only the read flag changes afterwards.
type ContactStore struct {
	db *sql.DB
}

func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

const contactColumns = `id, name, email, phone, subject, message, is_read, created_at`

func scanContact(row scanner) (*models.ContactMessage, error) {
	var c models.ContactMessage
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject, &c.Message, &c.IsRead, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ContactStore) Create(ctx context.Context, c *models.ContactMessage) (*models.ContactMessage, error) {
	created, err := scanContact(s.db.QueryRowContext(ctx, `
		INSERT INTO contacts (name, email, phone, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+contactColumns,
		c.Name, c.Email, c.Phone, c.Subject, c.Message,
	))
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	return created, nil
}

// List returns messages newest first. A non-positive limit returns all.
func (s *ContactStore) List(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var out []models.ContactMessage
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (s *ContactStore) FindByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	c, err := scanContact(s.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find contact: %w", err)
	}
	return c, nil
}

// SetRead flips the read flag, the only mutable field of a message.
func (s *ContactStore) SetRead(ctx context.Context, id uuid.UUID, read bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE contacts SET is_read = $1 WHERE id = $2`, read, id)
	if err != nil {
		return fmt.Errorf("set contact read: %w", err)
	}
	return rowsAffected(res)
}

func (s *ContactStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return rowsAffected(res)
}

func (s *ContactStore) CountUnread(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts WHERE NOT is_read`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count unread contacts: %w", err)
	}
	return n, nil
}
