// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package listing orders, filters, groups and paginates content for the
// public pages. Functions are pure: they never mutate their input and take
// the current instant explicitly.
package listing

import (
	"slices"
	"time"

	"durgamondir/internal/models"
)

// EventFilter selects which events the events page shows.
type EventFilter string

const (
	FilterAll      EventFilter = "all"
	FilterUpcoming EventFilter = "upcoming"
	FilterPast     EventFilter = "past"
)

// ParseEventFilter maps a query value to a filter; unknown values mean all.
func ParseEventFilter(s string) EventFilter {
	switch EventFilter(s) {
	case FilterUpcoming:
		return FilterUpcoming
	case FilterPast:
		return FilterPast
	default:
		return FilterAll
	}
}

// OrderEvents filters and orders events for display.
//
//   - all: upcoming events first, then past ones; each group ascending by
//     start time. Past events are therefore listed oldest first.
//   - upcoming: events starting strictly after now, soonest first.
//   - past: events that started strictly before now, most recent first.
//
// An event starting exactly at now is in neither the upcoming nor the
// past filter, but is listed (as past) under all.
func OrderEvents(events []models.Event, filter EventFilter, now time.Time) []models.Event {
	out := make([]models.Event, 0, len(events))

	switch filter {
	case FilterUpcoming:
		for _, e := range events {
			if e.DateTime.After(now) {
				out = append(out, e)
			}
		}
		slices.SortStableFunc(out, func(a, b models.Event) int {
			return a.DateTime.Compare(b.DateTime)
		})

	case FilterPast:
		for _, e := range events {
			if e.DateTime.Before(now) {
				out = append(out, e)
			}
		}
		slices.SortStableFunc(out, func(a, b models.Event) int {
			return b.DateTime.Compare(a.DateTime)
		})

	default:
		out = append(out, events...)
		rank := func(e models.Event) int {
			if e.IsUpcoming(now) {
				return 0
			}
			return 1
		}
		slices.SortStableFunc(out, func(a, b models.Event) int {
			if ra, rb := rank(a), rank(b); ra != rb {
				return ra - rb
			}
			return a.DateTime.Compare(b.DateTime)
		})
	}

	return out
}
