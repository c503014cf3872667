package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"durgamondir/internal/models"
)

type PageStore struct {
	db *sql.DB
}

func NewPageStore(db *sql.DB) *PageStore {
	return &PageStore{db: db}
}

const pageColumns = `id, title, slug, content, meta_description, featured_image,
	is_published, show_in_menu, menu_order, parent_id, author_id, created_at, updated_at`

func scanPage(row scanner) (*models.Page, error) {
	var p models.Page
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.MetaDescription, &p.FeaturedImage,
		&p.IsPublished, &p.ShowInMenu, &p.MenuOrder, &p.ParentID, &p.AuthorID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *PageStore) queryPages(ctx context.Context, query string, args ...any) ([]models.Page, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []models.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		pages = append(pages, *p)
	}
	return pages, rows.Err()
}

// List returns every page for the back office, menu pages first.
func (s *PageStore) List(ctx context.Context) ([]models.Page, error) {
	pages, err := s.queryPages(ctx,
		`SELECT `+pageColumns+` FROM pages ORDER BY menu_order ASC, title ASC`)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	return pages, nil
}

// ListMenu returns the published pages flagged for the navigation menu.
func (s *PageStore) ListMenu(ctx context.Context) ([]models.Page, error) {
	pages, err := s.queryPages(ctx, `
		SELECT `+pageColumns+` FROM pages
		WHERE show_in_menu AND is_published
		ORDER BY menu_order ASC, title ASC`)
	if err != nil {
		return nil, fmt.Errorf("list menu pages: %w", err)
	}
	return pages, nil
}

func (s *PageStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Page, error) {
	p, err := scanPage(s.db.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find page by id: %w", err)
	}
	return p, nil
}

// FindPublishedBySlug only matches published pages; drafts are not found.
func (s *PageStore) FindPublishedBySlug(ctx context.Context, slug string) (*models.Page, error) {
	p, err := scanPage(s.db.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE slug = $1 AND is_published`, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find page by slug: %w", err)
	}
	return p, nil
}

func (s *PageStore) Create(ctx context.Context, p *models.Page) (*models.Page, error) {
	created, err := scanPage(s.db.QueryRowContext(ctx, `
		INSERT INTO pages (title, slug, content, meta_description, featured_image,
			is_published, show_in_menu, menu_order, parent_id, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+pageColumns,
		p.Title, p.Slug, p.Content, p.MetaDescription, p.FeaturedImage,
		p.IsPublished, p.ShowInMenu, p.MenuOrder, p.ParentID, p.AuthorID,
	))
	if err != nil {
		return nil, pageWriteError("create page", err)
	}
	return created, nil
}

// Update saves a page. Assigning a parent that is the page itself or one of
// its descendants fails with ErrParentCycle. The check and the write share a
// transaction guarded by an advisory lock so two concurrent re-parentings
// cannot close a loop between them.
func (s *PageStore) Update(ctx context.Context, p *models.Page) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update page begin: %w", err)
	}
	defer tx.Rollback()

	if p.ParentID != nil {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext('pages.parent_id'))`); err != nil {
			return fmt.Errorf("update page lock: %w", err)
		}
		cycle, err := createsCycle(ctx, tx, p.ID, *p.ParentID)
		if err != nil {
			return fmt.Errorf("update page cycle check: %w", err)
		}
		if cycle {
			return ErrParentCycle
		}
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE pages SET title = $1, slug = $2, content = $3, meta_description = $4,
			featured_image = $5, is_published = $6, show_in_menu = $7, menu_order = $8,
			parent_id = $9, updated_at = NOW()
		WHERE id = $10`,
		p.Title, p.Slug, p.Content, p.MetaDescription, p.FeaturedImage,
		p.IsPublished, p.ShowInMenu, p.MenuOrder, p.ParentID, p.ID,
	)
	if err != nil {
		return pageWriteError("update page", err)
	}
	if err := rowsAffected(res); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update page commit: %w", err)
	}
	return nil
}

// createsCycle walks up from the proposed parent. UNION (not UNION ALL)
// stops the walk even if the stored data already loops.
func createsCycle(ctx context.Context, tx *sql.Tx, pageID, parentID uuid.UUID) (bool, error) {
	if pageID == parentID {
		return true, nil
	}
	var found bool
	err := tx.QueryRowContext(ctx, `
		WITH RECURSIVE ancestors(id, parent_id) AS (
			SELECT id, parent_id FROM pages WHERE id = $1
			UNION
			SELECT p.id, p.parent_id FROM pages p JOIN ancestors a ON p.id = a.parent_id
		)
		SELECT EXISTS (SELECT 1 FROM ancestors WHERE id = $2)`,
		parentID, pageID,
	).Scan(&found)
	return found, err
}

func pageWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err, "pages_slug_key"):
		return ErrSlugTaken
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", op, ErrInvalidReference)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Delete removes a page. Child pages go with it (ON DELETE CASCADE).
func (s *PageStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM pages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return rowsAffected(res)
}

func (s *PageStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return n, nil
}
