// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package listing

import (
	"testing"
	"time"

	"durgamondir/internal/models"
)

var now = time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC)

func event(title string, offset time.Duration) models.Event {
	return models.Event{Title: title, DateTime: now.Add(offset), IsActive: true}
}

func titles(events []models.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Title
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sampleEvents() []models.Event {
	return []models.Event{
		event("P2", -48*time.Hour),
		event("U2", 48*time.Hour),
		event("P1", -72*time.Hour),
		event("U1", 24*time.Hour),
		event("NOW", 0),
	}
}

func TestOrderEvents(t *testing.T) {
	tests := []struct {
		filter EventFilter
		want   []string
	}{
		{FilterAll, []string{"U1", "U2", "P1", "P2", "NOW"}},
		{FilterUpcoming, []string{"U1", "U2"}},
		{FilterPast, []string{"P2", "P1"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			got := titles(OrderEvents(sampleEvents(), tt.filter, now))
			if !equal(got, tt.want) {
				t.Errorf("OrderEvents(%s): got %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}

func TestOrderEventsDoesNotMutateInput(t *testing.T) {
	in := sampleEvents()
	before := titles(in)
	OrderEvents(in, FilterAll, now)
	OrderEvents(in, FilterPast, now)
	if !equal(titles(in), before) {
		t.Errorf("input reordered: got %v, want %v", titles(in), before)
	}
}

func TestOrderEventsEmpty(t *testing.T) {
	if got := OrderEvents(nil, FilterAll, now); len(got) != 0 {
		t.Errorf("expected empty result, got %d events", len(got))
	}
}

func TestParseEventFilter(t *testing.T) {
	tests := map[string]EventFilter{
		"":         FilterAll,
		"all":      FilterAll,
		"upcoming": FilterUpcoming,
		"past":     FilterPast,
		"bogus":    FilterAll,
	}
	for in, want := range tests {
		if got := ParseEventFilter(in); got != want {
			t.Errorf("ParseEventFilter(%q): got %q, want %q", in, got, want)
		}
	}
}
