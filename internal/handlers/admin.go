// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers of the temple site.
// Handlers are grouped by concern (public, auth, admin) and receive
// their dependencies through the handler struct.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"durgamondir/internal/listing"
	"durgamondir/internal/models"
	"durgamondir/internal/render"
	"durgamondir/internal/session"
	"durgamondir/internal/storage"
	"durgamondir/internal/store"
	"durgamondir/internal/timeline"
)

// recentContacts is how many messages the dashboard lists.
const recentContacts = 5

// Admin groups the back-office handlers and their dependencies.
type Admin struct {
	renderer *render.Renderer
	sessions *session.Store
	stores   *store.Stores
	media    storage.Backend
	clock    timeline.Clock
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(renderer *render.Renderer, sessions *session.Store, stores *store.Stores, media storage.Backend, clock timeline.Clock) *Admin {
	if clock == nil {
		clock = timeline.SystemClock{}
	}
	return &Admin{
		renderer: renderer,
		sessions: sessions,
		stores:   stores,
		media:    media,
		clock:    clock,
	}
}

// categoryConflict is a directory category used with more than one
// category order.
type categoryConflict struct {
	Directory string
	Category  string
}

// Dashboard renders the admin dashboard with counts, unread messages and
// category-order warnings.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	count := func(name string, fn func(context.Context) (int, error)) int {
		n, err := fn(ctx)
		if err != nil {
			slog.Error("dashboard count failed", "entity", name, "error", err)
		}
		return n
	}

	contacts, err := a.stores.Contacts.List(ctx, recentContacts)
	if err != nil {
		slog.Error("list recent contacts failed", "error", err)
	}

	a.renderer.Page(w, r, "dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data: map[string]any{
			"PageCount":      count("pages", a.stores.Pages.Count),
			"EventCount":     count("events", a.stores.Events.Count),
			"AlbumCount":     count("albums", a.stores.Albums.Count),
			"CommitteeCount": count("committee", a.stores.Committee.Count),
			"SanghaCount":    count("durga_sangha", a.stores.Sangha.Count),
			"MediaCount":     count("media", a.stores.Media.Count),
			"UnreadCount":    count("unread contacts", a.stores.Contacts.CountUnread),
			"Contacts":       contacts,
			"Conflicts":      a.categoryConflicts(ctx),
		},
	})
}

// categoryConflicts lists, for both directories, the category labels that
// appear with different category orders.
func (a *Admin) categoryConflicts(ctx context.Context) []categoryConflict {
	var out []categoryConflict
	for _, dir := range []models.Directory{models.DirectoryCommittee, models.DirectorySangha} {
		members, err := a.stores.Members(dir).List(ctx)
		if err != nil {
			slog.Error("list members for conflict check failed", "directory", dir, "error", err)
			continue
		}
		for _, label := range listing.CategoryOrderConflicts(members) {
			out = append(out, categoryConflict{Directory: dir.Title(), Category: label})
		}
	}
	return out
}

// ContactsPage renders every contact message, newest first.
func (a *Admin) ContactsPage(w http.ResponseWriter, r *http.Request) {
	contacts, err := a.stores.Contacts.List(r.Context(), 0)
	if err != nil {
		slog.Error("list contacts failed", "error", err)
	}

	a.renderer.Page(w, r, "contacts", &render.PageData{
		Title:   "Contacts",
		Section: "contacts",
		Data:    map[string]any{"Contacts": contacts},
	})
}

// ContactMarkRead handles the read/unread toggle form of the contacts page.
func (a *Admin) ContactMarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	read, err := strconv.ParseBool(r.FormValue("read"))
	if err != nil {
		read = true
	}

	err = a.stores.Contacts.SetRead(r.Context(), id, read)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("set contact read failed", "error", err, "id", id)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/contacts", http.StatusSeeOther)
}
