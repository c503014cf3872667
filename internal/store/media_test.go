package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"durgamondir/internal/models"
)

func TestMediaStoreLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewMediaStore(db)
	ctx := context.Background()
	uploader := testStaff(t, db)

	key := "media/test/" + uuid.NewString()[:8] + ".jpg"
	thumb := key + "_thumb.jpg"

	created, err := s.Create(ctx, &models.Media{
		Key:          key,
		ThumbKey:     &thumb,
		OriginalName: "durga.jpg",
		ContentType:  "image/jpeg",
		SizeBytes:    2048,
		UploaderID:   uploader.ID,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}

	found, err := s.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found.Key != key {
		t.Errorf("key: got %q, want %q", found.Key, key)
	}
	if found.ThumbKey == nil || *found.ThumbKey != thumb {
		t.Errorf("thumb key: got %v, want %q", found.ThumbKey, thumb)
	}

	deleted, err := s.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.Key != key {
		t.Errorf("deleted key: got %q, want %q", deleted.Key, key)
	}
	if _, err := s.FindByID(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete: got %v, want ErrNotFound", err)
	}
}

func TestParseMediaKind(t *testing.T) {
	tests := map[string]MediaKind{
		"":         MediaAll,
		"image":    MediaImages,
		"document": MediaDocuments,
		"video":    MediaAll,
	}
	for in, want := range tests {
		if got := ParseMediaKind(in); got != want {
			t.Errorf("ParseMediaKind(%q): got %q, want %q", in, got, want)
		}
	}
}

func TestMediaStoreKinds(t *testing.T) {
	db := testDB(t)
	s := NewMediaStore(db)
	ctx := context.Background()
	uploader := testStaff(t, db)

	var ids []uuid.UUID
	for _, m := range []models.Media{
		{Key: "media/" + uuid.NewString()[:8] + ".png", OriginalName: "pandal.png", ContentType: "image/png", SizeBytes: 100},
		{Key: "media/" + uuid.NewString()[:8] + ".pdf", OriginalName: "nirghonto.pdf", ContentType: "application/pdf", SizeBytes: 50},
	} {
		m.UploaderID = uploader.ID
		created, err := s.Create(ctx, &m)
		if err != nil {
			t.Fatalf("Create %s: %v", m.OriginalName, err)
		}
		ids = append(ids, created.ID)
		t.Cleanup(func() { s.Delete(ctx, created.ID) })
	}

	contains := func(items []models.Media, id uuid.UUID) bool {
		for _, m := range items {
			if m.ID == id {
				return true
			}
		}
		return false
	}

	images, err := s.List(ctx, MediaImages, 1000, 0)
	if err != nil {
		t.Fatalf("List images: %v", err)
	}
	if !contains(images, ids[0]) || contains(images, ids[1]) {
		t.Error("image listing has the wrong items")
	}
	docs, err := s.List(ctx, MediaDocuments, 1000, 0)
	if err != nil {
		t.Fatalf("List documents: %v", err)
	}
	if contains(docs, ids[0]) || !contains(docs, ids[1]) {
		t.Error("document listing has the wrong items")
	}

	all, _ := s.CountKind(ctx, MediaAll)
	imgCount, _ := s.CountKind(ctx, MediaImages)
	docCount, _ := s.CountKind(ctx, MediaDocuments)
	if imgCount+docCount != all {
		t.Errorf("counts: %d images + %d documents != %d", imgCount, docCount, all)
	}

	total, err := s.TotalBytes(ctx)
	if err != nil {
		t.Fatalf("TotalBytes: %v", err)
	}
	if total < 150 {
		t.Errorf("total bytes: got %d, want at least 150", total)
	}
}
