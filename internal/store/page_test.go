package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"durgamondir/internal/models"
)

func newTestPage(t *testing.T, s *PageStore, author uuid.UUID, parent *uuid.UUID) *models.Page {
	t.Helper()
	p, err := s.Create(context.Background(), &models.Page{
		Title:       "Test Page",
		Slug:        uniqueSlug("store-page"),
		Content:     "body",
		IsPublished: true,
		ParentID:    parent,
		AuthorID:    author,
	})
	if err != nil {
		t.Fatalf("create page: %v", err)
	}
	return p
}

func TestPageStoreSlugUnique(t *testing.T) {
	db := testDB(t)
	s := NewPageStore(db)
	ctx := context.Background()
	author := testStaff(t, db)

	first := newTestPage(t, s, author.ID, nil)

	_, err := s.Create(ctx, &models.Page{Title: "Dup", Slug: first.Slug, AuthorID: author.ID})
	if !errors.Is(err, ErrSlugTaken) {
		t.Errorf("duplicate slug on create: got %v, want ErrSlugTaken", err)
	}

	second := newTestPage(t, s, author.ID, nil)
	second.Slug = first.Slug
	if err := s.Update(ctx, second); !errors.Is(err, ErrSlugTaken) {
		t.Errorf("duplicate slug on update: got %v, want ErrSlugTaken", err)
	}
}

func TestPageStoreFindPublishedBySlug(t *testing.T) {
	db := testDB(t)
	s := NewPageStore(db)
	ctx := context.Background()
	author := testStaff(t, db)

	p := newTestPage(t, s, author.ID, nil)
	found, err := s.FindPublishedBySlug(ctx, p.Slug)
	if err != nil {
		t.Fatalf("FindPublishedBySlug: %v", err)
	}
	if found.ID != p.ID {
		t.Errorf("id: got %s, want %s", found.ID, p.ID)
	}

	p.IsPublished = false
	if err := s.Update(ctx, p); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := s.FindPublishedBySlug(ctx, p.Slug); !errors.Is(err, ErrNotFound) {
		t.Errorf("unpublished page: got %v, want ErrNotFound", err)
	}
}

func TestPageStoreRejectsParentCycle(t *testing.T) {
	db := testDB(t)
	s := NewPageStore(db)
	ctx := context.Background()
	author := testStaff(t, db)

	root := newTestPage(t, s, author.ID, nil)
	child := newTestPage(t, s, author.ID, &root.ID)
	grandchild := newTestPage(t, s, author.ID, &child.ID)

	root.ParentID = &grandchild.ID
	if err := s.Update(ctx, root); !errors.Is(err, ErrParentCycle) {
		t.Errorf("root under grandchild: got %v, want ErrParentCycle", err)
	}

	root.ParentID = &root.ID
	if err := s.Update(ctx, root); !errors.Is(err, ErrParentCycle) {
		t.Errorf("page as own parent: got %v, want ErrParentCycle", err)
	}

	// Moving the grandchild directly under the root is fine.
	grandchild.ParentID = &root.ID
	if err := s.Update(ctx, grandchild); err != nil {
		t.Errorf("valid re-parent: %v", err)
	}
}

func TestPageStoreDeleteCascadesChildren(t *testing.T) {
	db := testDB(t)
	s := NewPageStore(db)
	ctx := context.Background()
	author := testStaff(t, db)

	parent := newTestPage(t, s, author.ID, nil)
	child := newTestPage(t, s, author.ID, &parent.ID)

	if err := s.Delete(ctx, parent.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.FindByID(ctx, child.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("child after parent delete: got %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, parent.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: got %v, want ErrNotFound", err)
	}
}

func TestPageStoreUnknownParent(t *testing.T) {
	db := testDB(t)
	s := NewPageStore(db)
	author := testStaff(t, db)

	missing := uuid.New()
	_, err := s.Create(context.Background(), &models.Page{
		Title: "Orphan", Slug: uniqueSlug("orphan"), ParentID: &missing, AuthorID: author.ID,
	})
	if !errors.Is(err, ErrInvalidReference) {
		t.Errorf("unknown parent: got %v, want ErrInvalidReference", err)
	}
}
