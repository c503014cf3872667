package store

import (
	"context"
	"testing"
	"time"

	"durgamondir/internal/models"
)

func TestEventStoreNextSkipsPastAndInactive(t *testing.T) {
	db := testDB(t)
	s := NewEventStore(db)
	ctx := context.Background()
	now := time.Now().Add(1000 * 24 * time.Hour) // well past any seeded event

	in := []models.Event{
		{Title: "store-past", DateTime: now.Add(-time.Hour), IsActive: true},
		{Title: "store-later", DateTime: now.Add(48 * time.Hour), IsActive: true},
		{Title: "store-soon", DateTime: now.Add(time.Hour), IsActive: true},
		{Title: "store-hidden", DateTime: now.Add(2 * time.Hour), IsActive: false},
	}
	for i := range in {
		e, err := s.Create(ctx, &in[i])
		if err != nil {
			t.Fatalf("Create %s: %v", in[i].Title, err)
		}
		t.Cleanup(func() { s.Delete(context.Background(), e.ID) })
	}

	next, err := s.Next(ctx, now, 2)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if len(next) != 2 {
		t.Fatalf("Next: got %d events, want 2", len(next))
	}
	if next[0].Title != "store-soon" || next[1].Title != "store-later" {
		t.Errorf("Next order: got %q, %q", next[0].Title, next[1].Title)
	}
}
