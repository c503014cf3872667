package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"durgamondir/internal/models"
)

// MemberStore serves one member directory. The committee and the Durga
// Sangha share a schema but live in separate tables.
type MemberStore struct {
	db    *sql.DB
	dir   models.Directory
	table string
}

// NewMemberStore panics on an unknown directory; the set is fixed at
// compile time.
func NewMemberStore(db *sql.DB, dir models.Directory) *MemberStore {
	var table string
	switch dir {
	case models.DirectoryCommittee:
		table = "committee_members"
	case models.DirectorySangha:
		table = "durga_sangha_members"
	default:
		panic(fmt.Sprintf("store: unknown member directory %q", dir))
	}
	return &MemberStore{db: db, dir: dir, table: table}
}

const memberColumns = `id, name, position, category, category_order, image, phone,
	description, sort_order, is_active, created_at`

func scanMember(row scanner) (*models.Member, error) {
	var m models.Member
	err := row.Scan(
		&m.ID, &m.Name, &m.Position, &m.Category, &m.CategoryOrder, &m.Image, &m.Phone,
		&m.Description, &m.Order, &m.IsActive, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MemberStore) queryMembers(ctx context.Context, where string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+memberColumns+` FROM `+s.table+where+`
		ORDER BY category_order ASC, sort_order ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

// List returns every member, active or not.
func (s *MemberStore) List(ctx context.Context) ([]models.Member, error) {
	members, err := s.queryMembers(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.dir, err)
	}
	return members, nil
}

// ListActive returns active members ordered by (category_order, order, name).
func (s *MemberStore) ListActive(ctx context.Context) ([]models.Member, error) {
	members, err := s.queryMembers(ctx, " WHERE is_active")
	if err != nil {
		return nil, fmt.Errorf("list active %s: %w", s.dir, err)
	}
	return members, nil
}

func (s *MemberStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	m, err := scanMember(s.db.QueryRowContext(ctx,
		`SELECT `+memberColumns+` FROM `+s.table+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s member: %w", s.dir, err)
	}
	return m, nil
}

// Create fills an empty category with the directory default.
func (s *MemberStore) Create(ctx context.Context, m *models.Member) (*models.Member, error) {
	if m.Category == "" {
		m.Category = s.dir.DefaultCategory()
	}
	created, err := scanMember(s.db.QueryRowContext(ctx, `
		INSERT INTO `+s.table+` (name, position, category, category_order, image, phone,
			description, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+memberColumns,
		m.Name, m.Position, m.Category, m.CategoryOrder, m.Image, m.Phone,
		m.Description, m.Order, m.IsActive,
	))
	if err != nil {
		return nil, fmt.Errorf("create %s member: %w", s.dir, err)
	}
	return created, nil
}

func (s *MemberStore) Update(ctx context.Context, m *models.Member) error {
	if m.Category == "" {
		m.Category = s.dir.DefaultCategory()
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE `+s.table+` SET name = $1, position = $2, category = $3, category_order = $4,
			image = $5, phone = $6, description = $7, sort_order = $8, is_active = $9
		WHERE id = $10`,
		m.Name, m.Position, m.Category, m.CategoryOrder, m.Image, m.Phone,
		m.Description, m.Order, m.IsActive, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update %s member: %w", s.dir, err)
	}
	return rowsAffected(res)
}

func (s *MemberStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+s.table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete %s member: %w", s.dir, err)
	}
	return rowsAffected(res)
}

func (s *MemberStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+s.table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", s.dir, err)
	}
	return n, nil
}
