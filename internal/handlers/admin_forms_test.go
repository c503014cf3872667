package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"durgamondir/internal/models"
	"durgamondir/internal/store"
)

func TestBindForm(t *testing.T) {
	dhaka := time.FixedZone("BST", 6*60*60)

	tests := []struct {
		name       string
		form       url.Values
		wantFields []string
		check      func(t *testing.T, in *eventInput)
	}{
		{
			name: "valid",
			form: url.Values{
				"title":     {"  মহাষষ্ঠী  "},
				"date_time": {"2025-09-28T18:30"},
				"location":  {"মন্দির প্রাঙ্গণ"},
				"is_active": {"true"},
			},
			check: func(t *testing.T, in *eventInput) {
				if in.Title != "মহাষষ্ঠী" {
					t.Errorf("title not trimmed: %q", in.Title)
				}
				want := time.Date(2025, 9, 28, 18, 30, 0, 0, dhaka)
				if !in.DateTime.Equal(want) {
					t.Errorf("date_time: got %v, want %v", in.DateTime, want)
				}
				if !in.IsActive || in.IsFeatured {
					t.Errorf("checkboxes: active=%v featured=%v", in.IsActive, in.IsFeatured)
				}
			},
		},
		{
			name:       "missing required",
			form:       url.Values{"title": {"Puja"}},
			wantFields: []string{"date_time", "location"},
		},
		{
			name:       "unparseable date",
			form:       url.Values{"title": {"Puja"}, "date_time": {"next friday"}, "location": {"x"}},
			wantFields: []string{"date_time"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in eventInput
			err := bindForm(formRequest("POST", "/admin/events", tt.form), dhaka, &in)

			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("bindForm: %v", err)
				}
				tt.check(t, &in)
				return
			}

			var verr *validationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(verr.Fields) != len(tt.wantFields) {
				t.Errorf("fields: got %v, want %v", verr.Fields, tt.wantFields)
			}
			for _, f := range tt.wantFields {
				if _, ok := verr.Fields[f]; !ok {
					t.Errorf("missing message for %q in %v", f, verr.Fields)
				}
			}
		})
	}
}

func TestBindFormParseErrorWins(t *testing.T) {
	var in memberInput
	form := url.Values{"name": {"Gopal"}, "position": {"Member"}, "order": {"first"}}
	err := bindForm(formRequest("POST", "/", form), time.UTC, &in)

	var verr *validationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := verr.Fields["order"]; got != "একটি পূর্ণসংখ্যা লিখুন।" {
		t.Errorf("order message: got %q", got)
	}
}

func TestPageForms(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testStaff(t, env)
	suffix := uuid.NewString()[:8]

	submit := func(handler http.HandlerFunc, id string, form url.Values) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		handler(w, asStaff(formRequest("POST", "/admin/pages", form), user, id))
		return w
	}

	t.Run("new form", func(t *testing.T) {
		w := httptest.NewRecorder()
		env.Admin.PageNew(w, asStaff(httptest.NewRequest("GET", "/admin/pages/new", nil), user, ""))
		if w.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", w.Code)
		}
		for _, want := range []string{`name="title"`, `name="csrf_token"`, `action="/admin/pages"`} {
			if !strings.Contains(w.Body.String(), want) {
				t.Errorf("form missing %s", want)
			}
		}
	})

	w := submit(env.Admin.PageCreate, "", url.Values{
		"title":        {"Durga Puja " + suffix},
		"content":      {"# শুভ মহালয়া"},
		"is_published": {"true"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("create status: got %d, want 303: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/admin/pages" {
		t.Errorf("redirect: got %q", loc)
	}

	created, err := env.Stores.Pages.FindPublishedBySlug(ctx, "durga-puja-"+suffix)
	if err != nil {
		t.Fatalf("created page not found: %v", err)
	}
	t.Cleanup(func() { env.Stores.Pages.Delete(ctx, created.ID) })
	if created.AuthorID != user.ID {
		t.Errorf("author: got %s, want %s", created.AuthorID, user.ID)
	}

	t.Run("missing title shows the form again", func(t *testing.T) {
		w := submit(env.Admin.PageCreate, "", url.Values{"slug": {"untitled-" + suffix}})
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status: got %d, want 422", w.Code)
		}
		body := w.Body.String()
		if !strings.Contains(body, "এই ঘরটি পূরণ করা আবশ্যক।") {
			t.Error("field message not rendered")
		}
		if !strings.Contains(body, `value="untitled-`+suffix+`"`) {
			t.Error("submitted slug not kept in the form")
		}
	})

	t.Run("duplicate slug", func(t *testing.T) {
		w := submit(env.Admin.PageCreate, "", url.Values{"title": {"Other"}, "slug": {created.Slug}})
		if w.Code != http.StatusConflict {
			t.Fatalf("status: got %d, want 409", w.Code)
		}
		if !strings.Contains(w.Body.String(), "এই স্লাগ ইতিমধ্যে ব্যবহৃত হচ্ছে।") {
			t.Error("slug message not rendered")
		}
	})

	t.Run("edit and update", func(t *testing.T) {
		w := httptest.NewRecorder()
		env.Admin.PageEdit(w, asStaff(httptest.NewRequest("GET", "/", nil), user, created.ID.String()))
		if w.Code != http.StatusOK {
			t.Fatalf("edit status: got %d, want 200", w.Code)
		}
		if !strings.Contains(w.Body.String(), `value="Durga Puja `+suffix+`"`) {
			t.Error("edit form not filled with the stored title")
		}

		w = submit(env.Admin.PageUpdate, created.ID.String(), url.Values{
			"title":        {"Durga Puja " + suffix + " (updated)"},
			"slug":         {created.Slug},
			"show_in_menu": {"true"},
			"menu_order":   {"3"},
		})
		if w.Code != http.StatusSeeOther {
			t.Fatalf("update status: got %d, want 303: %s", w.Code, w.Body.String())
		}
		p, err := env.Stores.Pages.FindByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if p.IsPublished {
			t.Error("unchecked box should unpublish the page")
		}
		if !p.ShowInMenu || p.MenuOrder != 3 {
			t.Errorf("menu: show=%v order=%d", p.ShowInMenu, p.MenuOrder)
		}
	})

	t.Run("unknown page", func(t *testing.T) {
		w := httptest.NewRecorder()
		env.Admin.PageEdit(w, asStaff(httptest.NewRequest("GET", "/", nil), user, uuid.NewString()))
		if w.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", w.Code)
		}
	})

	t.Run("delete", func(t *testing.T) {
		tmp, err := env.Stores.Pages.Create(ctx, &models.Page{Title: "Tmp", Slug: "tmp-" + suffix, AuthorID: user.ID})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		w := submit(env.Admin.PageDelete, tmp.ID.String(), url.Values{})
		if w.Code != http.StatusSeeOther {
			t.Fatalf("delete status: got %d, want 303", w.Code)
		}
		if _, err := env.Stores.Pages.FindByID(ctx, tmp.ID); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("page still present: %v", err)
		}
	})

	t.Run("list", func(t *testing.T) {
		w := httptest.NewRecorder()
		env.Admin.PagesList(w, asStaff(httptest.NewRequest("GET", "/admin/pages", nil), user, ""))
		if w.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", w.Code)
		}
		if !strings.Contains(w.Body.String(), "/admin/pages/"+created.ID.String()+"/edit") {
			t.Error("list does not link to the page editor")
		}
	})
}

func TestEventForms(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testStaff(t, env)
	title := "Sandhi Puja " + uuid.NewString()[:8]

	w := httptest.NewRecorder()
	env.Admin.EventCreate(w, asStaff(formRequest("POST", "/admin/events", url.Values{
		"title":     {title},
		"date_time": {"2025-10-01T18:30"},
		"location":  {"মূল মণ্ডপ"},
		"is_active": {"true"},
	}), user, ""))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("create status: got %d, want 303: %s", w.Code, w.Body.String())
	}

	events, err := env.Stores.Events.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var created *models.Event
	for i := range events {
		if events[i].Title == title {
			created = &events[i]
		}
	}
	if created == nil {
		t.Fatal("created event not listed")
	}
	t.Cleanup(func() { env.Stores.Events.Delete(ctx, created.ID) })

	// The test renderer displays and reads times in UTC.
	if want := time.Date(2025, 10, 1, 18, 30, 0, 0, time.UTC); !created.DateTime.Equal(want) {
		t.Errorf("date_time: got %v, want %v", created.DateTime, want)
	}

	t.Run("edit shows the stored time", func(t *testing.T) {
		w := httptest.NewRecorder()
		env.Admin.EventEdit(w, asStaff(httptest.NewRequest("GET", "/", nil), user, created.ID.String()))
		if !strings.Contains(w.Body.String(), `value="2025-10-01T18:30"`) {
			t.Error("datetime-local value not rendered")
		}
	})

	t.Run("bad date keeps the typed value", func(t *testing.T) {
		w := httptest.NewRecorder()
		env.Admin.EventUpdate(w, asStaff(formRequest("POST", "/", url.Values{
			"title": {title}, "date_time": {"someday"}, "location": {"x"},
		}), user, created.ID.String()))
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status: got %d, want 422", w.Code)
		}
		if !strings.Contains(w.Body.String(), `value="someday"`) {
			t.Error("typed date not shown again")
		}
	})
}

func TestMemberFormsStayInTheirDirectory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testStaff(t, env)
	name := "Form Member " + uuid.NewString()[:8]
	sangha := env.Admin.MembersAPI(models.DirectorySangha)

	w := httptest.NewRecorder()
	sangha.CreateSubmit(w, asStaff(formRequest("POST", "/admin/durga-sangha", url.Values{
		"name":      {name},
		"position":  {"সদস্য"},
		"order":     {"2"},
		"is_active": {"true"},
	}), user, ""))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("create status: got %d, want 303: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/admin/durga-sangha" {
		t.Errorf("redirect: got %q", loc)
	}

	find := func(dir models.Directory) *models.Member {
		members, err := env.Stores.Members(dir).List(ctx)
		if err != nil {
			t.Fatalf("List %s: %v", dir, err)
		}
		for i := range members {
			if members[i].Name == name {
				return &members[i]
			}
		}
		return nil
	}

	m := find(models.DirectorySangha)
	if m == nil {
		t.Fatal("member not stored in the durga sangha directory")
	}
	t.Cleanup(func() { env.Stores.Members(models.DirectorySangha).Delete(ctx, m.ID) })
	if find(models.DirectoryCommittee) != nil {
		t.Error("member leaked into the committee directory")
	}
	if m.Order != 2 {
		t.Errorf("order: got %d, want 2", m.Order)
	}

	t.Run("committee cannot edit it", func(t *testing.T) {
		w := httptest.NewRecorder()
		env.Admin.MembersAPI(models.DirectoryCommittee).EditPage(w, asStaff(httptest.NewRequest("GET", "/", nil), user, m.ID.String()))
		if w.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", w.Code)
		}
	})

	t.Run("missing position", func(t *testing.T) {
		w := httptest.NewRecorder()
		sangha.UpdateSubmit(w, asStaff(formRequest("POST", "/", url.Values{"name": {name}}), user, m.ID.String()))
		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("status: got %d, want 422", w.Code)
		}
	})

	t.Run("list", func(t *testing.T) {
		w := httptest.NewRecorder()
		sangha.ListPage(w, asStaff(httptest.NewRequest("GET", "/admin/durga-sangha", nil), user, ""))
		if w.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", w.Code)
		}
		if !strings.Contains(w.Body.String(), name) {
			t.Error("member missing from the list page")
		}
	})
}

func TestSettingsForms(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testStaff(t, env)

	if original, err := env.Stores.Settings.Get(ctx); err == nil {
		t.Cleanup(func() { env.Stores.Settings.Update(ctx, original) })
	}
	if original, err := env.Stores.Donation.Load(ctx); err == nil {
		t.Cleanup(func() { env.Stores.Donation.Update(ctx, original) })
	}

	w := httptest.NewRecorder()
	env.Admin.SettingsSave(w, asStaff(formRequest("POST", "/admin/settings", url.Values{
		"site_title":    {"শ্রী শ্রী দুর্গা মন্দির"},
		"contact_email": {"info@durgamondir.local"},
	}), user, ""))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("settings status: got %d, want 303: %s", w.Code, w.Body.String())
	}
	s, err := env.Stores.Settings.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.SiteTitle != "শ্রী শ্রী দুর্গা মন্দির" || s.ContactEmail != "info@durgamondir.local" {
		t.Errorf("settings not saved: %+v", s)
	}

	w = httptest.NewRecorder()
	env.Admin.DonationSave(w, asStaff(formRequest("POST", "/admin/settings/donation", url.Values{
		"bkash_number": {" 01700000000 "},
		"is_active":    {"true"},
	}), user, ""))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("donation status: got %d, want 303: %s", w.Code, w.Body.String())
	}
	d, err := env.Stores.Donation.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.BkashNumber != "01700000000" || !d.IsActive {
		t.Errorf("donation not saved: %+v", d)
	}

	t.Run("page shows saved values", func(t *testing.T) {
		w := httptest.NewRecorder()
		env.Admin.SettingsPage(w, asStaff(httptest.NewRequest("GET", "/admin/settings?saved=1", nil), user, ""))
		body := w.Body.String()
		if !strings.Contains(body, `value="01700000000"`) {
			t.Error("donation form not filled")
		}
		if !strings.Contains(body, "পরিবর্তন সংরক্ষিত হয়েছে।") {
			t.Error("saved notice missing")
		}
	})

	t.Run("invalid url", func(t *testing.T) {
		w := httptest.NewRecorder()
		env.Admin.SettingsSave(w, asStaff(formRequest("POST", "/admin/settings", url.Values{
			"facebook_url": {"not a url"},
		}), user, ""))
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status: got %d, want 422", w.Code)
		}
		if !strings.Contains(w.Body.String(), "সঠিক URL লিখুন।") {
			t.Error("url message not rendered")
		}
	})
}
