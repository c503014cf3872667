package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"durgamondir/internal/models"
	"durgamondir/internal/render"
	"durgamondir/internal/store"
)

// dateTimeLocal is the value format of <input type="datetime-local">.
const dateTimeLocal = "2006-01-02T15:04"

// formReader reads typed values from a submitted form. Values that do not
// parse are collected as field errors.
type formReader struct {
	values url.Values
	loc    *time.Location
	errs   map[string]string
}

func (f *formReader) text(name string) string {
	return f.values.Get(name)
}

// checkbox treats any submitted value except an explicit false as checked.
func (f *formReader) checkbox(name string) bool {
	switch f.values.Get(name) {
	case "", "false", "0", "off":
		return false
	}
	return true
}

func (f *formReader) number(name string) int {
	v := strings.TrimSpace(f.values.Get(name))
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		f.errs[name] = "একটি পূর্ণসংখ্যা লিখুন।"
	}
	return n
}

// optionalID returns nil for an empty value.
func (f *formReader) optionalID(name string) *uuid.UUID {
	v := strings.TrimSpace(f.values.Get(name))
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		f.errs[name] = "মানটি সঠিক নয়।"
		return nil
	}
	return &id
}

// dateTime parses a datetime-local value in the display timezone.
func (f *formReader) dateTime(name string) time.Time {
	v := strings.TrimSpace(f.values.Get(name))
	if v == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(dateTimeLocal, v, f.loc)
	if err != nil {
		f.errs[name] = "তারিখ ও সময় সঠিক নয়।"
	}
	return t
}

type formInput interface {
	normalize()
	readForm(f *formReader)
}

// bindForm reads a urlencoded form into dst and validates it. Parse
// failures win over the validation message of the same field.
func bindForm(r *http.Request, loc *time.Location, dst formInput) error {
	if err := r.ParseForm(); err != nil {
		return &badRequest{msg: "invalid form body"}
	}
	f := &formReader{values: r.PostForm, loc: loc, errs: map[string]string{}}
	dst.readForm(f)
	dst.normalize()

	err := validateStruct(dst)
	if len(f.errs) == 0 {
		return err
	}
	var verr *validationError
	if err != nil && !errors.As(err, &verr) {
		return err
	}
	if verr != nil {
		for field, msg := range verr.Fields {
			if _, ok := f.errs[field]; !ok {
				f.errs[field] = msg
			}
		}
	}
	return &validationError{Fields: f.errs}
}

func (in *pageInput) readForm(f *formReader) {
	in.Title = f.text("title")
	in.Slug = f.text("slug")
	in.Content = f.text("content")
	in.MetaDescription = f.text("meta_description")
	in.FeaturedImage = f.text("featured_image")
	in.IsPublished = f.checkbox("is_published")
	in.ShowInMenu = f.checkbox("show_in_menu")
	in.MenuOrder = f.number("menu_order")
	in.ParentID = f.optionalID("parent_id")
}

func (in *eventInput) readForm(f *formReader) {
	in.Title = f.text("title")
	in.Description = f.text("description")
	in.DateTime = f.dateTime("date_time")
	in.Location = f.text("location")
	in.FeaturedImage = f.text("featured_image")
	in.IsFeatured = f.checkbox("is_featured")
	in.IsActive = f.checkbox("is_active")
}

func (in *memberInput) readForm(f *formReader) {
	in.Name = f.text("name")
	in.Position = f.text("position")
	in.Category = f.text("category")
	in.CategoryOrder = f.number("category_order")
	in.Image = f.text("image")
	in.Phone = f.text("phone")
	in.Description = f.text("description")
	in.Order = f.number("order")
	in.IsActive = f.checkbox("is_active")
}

// formFailure explains a failed submission as field messages. ok is false
// for errors no field of the form accounts for.
func formFailure(err error) (status int, fields map[string]string, ok bool) {
	var verr *validationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, verr.Fields, true
	case errors.Is(err, store.ErrSlugTaken):
		return http.StatusConflict, map[string]string{"slug": "এই স্লাগ ইতিমধ্যে ব্যবহৃত হচ্ছে।"}, true
	case errors.Is(err, store.ErrParentCycle):
		return http.StatusUnprocessableEntity, map[string]string{"parent_id": "কোনো পাতা নিজের উপ-পাতার অধীনে রাখা যাবে না।"}, true
	case errors.Is(err, store.ErrInvalidReference):
		return http.StatusUnprocessableEntity, map[string]string{"parent_id": "নির্বাচিত মূল পাতাটি আর নেই।"}, true
	}
	return 0, nil, false
}

// formServerError answers the errors a form cannot show next to a field.
func formServerError(w http.ResponseWriter, r *http.Request, err error) {
	var breq *badRequest
	switch {
	case errors.As(err, &breq):
		http.Error(w, breq.msg, http.StatusBadRequest)
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "Not Found", http.StatusNotFound)
	case errors.Is(err, store.ErrSingletonExists):
		http.Error(w, "Conflict", http.StatusConflict)
	default:
		slog.Error("admin form request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// showForm renders a form page. A non-nil err is a failed submission and
// the form is shown again with its field messages.
func showForm(w http.ResponseWriter, r *http.Request, rn *render.Renderer, name string, pd *render.PageData, err error) {
	pd.Data["Errors"] = map[string]string{}
	if err == nil {
		rn.Page(w, r, name, pd)
		return
	}

	status, fields, ok := formFailure(err)
	if !ok {
		formServerError(w, r, err)
		return
	}
	pd.Data["Errors"] = fields
	rn.PageStatus(w, r, status, name, pd)
}

// deleteAndRedirect serves the delete buttons of the list pages.
func deleteAndRedirect(w http.ResponseWriter, r *http.Request, del func(context.Context, uuid.UUID) error, to string) {
	id, err := urlID(r)
	if err == nil {
		err = del(r.Context(), id)
	}
	if err != nil {
		formServerError(w, r, err)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// --- Pages ---

// PagesList renders the pages management page.
func (a *Admin) PagesList(w http.ResponseWriter, r *http.Request) {
	pages, err := a.stores.Pages.List(r.Context())
	if err != nil {
		slog.Error("list pages failed", "error", err)
	}

	a.renderer.Page(w, r, "pages", &render.PageData{
		Title:   "Pages",
		Section: "pages",
		Data:    map[string]any{"Items": pages},
	})
}

// pageForm renders the page editor. id is uuid.Nil for a new page; the
// page itself is left out of the parent choices.
func (a *Admin) pageForm(w http.ResponseWriter, r *http.Request, id uuid.UUID, in *pageInput, err error) {
	pages, lerr := a.stores.Pages.List(r.Context())
	if lerr != nil {
		slog.Error("list parent pages failed", "error", lerr)
	}
	parents := make([]models.Page, 0, len(pages))
	for _, p := range pages {
		if p.ID != id {
			parents = append(parents, p)
		}
	}

	title := "Edit Page"
	if id == uuid.Nil {
		title = "New Page"
	}
	showForm(w, r, a.renderer, "page_form", &render.PageData{
		Title:   title,
		Section: "pages",
		Data: map[string]any{
			"IsNew":   id == uuid.Nil,
			"ID":      id,
			"Item":    in,
			"Parents": parents,
		},
	}, err)
}

// PageNew renders the new page form.
func (a *Admin) PageNew(w http.ResponseWriter, r *http.Request) {
	a.pageForm(w, r, uuid.Nil, &pageInput{IsPublished: true}, nil)
}

// PageCreate handles the new page form submission.
func (a *Admin) PageCreate(w http.ResponseWriter, r *http.Request) {
	var in pageInput
	if err := bindForm(r, a.renderer.Location(), &in); err != nil {
		a.pageForm(w, r, uuid.Nil, &in, err)
		return
	}
	if _, err := a.createPage(r.Context(), &in); err != nil {
		a.pageForm(w, r, uuid.Nil, &in, err)
		return
	}
	http.Redirect(w, r, "/admin/pages", http.StatusSeeOther)
}

// PageEdit renders the edit page form.
func (a *Admin) PageEdit(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		formServerError(w, r, err)
		return
	}
	p, err := a.stores.Pages.FindByID(r.Context(), id)
	if err != nil {
		formServerError(w, r, err)
		return
	}
	a.pageForm(w, r, id, newPageInput(p), nil)
}

// PageUpdate handles the edit page form submission.
func (a *Admin) PageUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		formServerError(w, r, err)
		return
	}
	var in pageInput
	if err := bindForm(r, a.renderer.Location(), &in); err != nil {
		a.pageForm(w, r, id, &in, err)
		return
	}
	if _, err := a.updatePage(r.Context(), id, &in); err != nil {
		a.pageForm(w, r, id, &in, err)
		return
	}
	http.Redirect(w, r, "/admin/pages", http.StatusSeeOther)
}

// PageDelete handles page deletion.
func (a *Admin) PageDelete(w http.ResponseWriter, r *http.Request) {
	deleteAndRedirect(w, r, a.stores.Pages.Delete, "/admin/pages")
}

// --- Events ---

func (a *Admin) EventsList(w http.ResponseWriter, r *http.Request) {
	events, err := a.stores.Events.List(r.Context())
	if err != nil {
		slog.Error("list events failed", "error", err)
	}

	a.renderer.Page(w, r, "events", &render.PageData{
		Title:   "Events",
		Section: "events",
		Data: map[string]any{
			"Items": events,
			"Now":   a.clock.Now(),
		},
	})
}

// eventForm renders the event editor. A submitted date that did not parse
// is shown back as typed.
func (a *Admin) eventForm(w http.ResponseWriter, r *http.Request, id uuid.UUID, in *eventInput, err error) {
	dateTime := r.PostFormValue("date_time")
	if !in.DateTime.IsZero() {
		dateTime = in.DateTime.In(a.renderer.Location()).Format(dateTimeLocal)
	}

	title := "Edit Event"
	if id == uuid.Nil {
		title = "New Event"
	}
	showForm(w, r, a.renderer, "event_form", &render.PageData{
		Title:   title,
		Section: "events",
		Data: map[string]any{
			"IsNew":    id == uuid.Nil,
			"ID":       id,
			"Item":     in,
			"DateTime": dateTime,
		},
	}, err)
}

func (a *Admin) EventNew(w http.ResponseWriter, r *http.Request) {
	a.eventForm(w, r, uuid.Nil, &eventInput{IsActive: true}, nil)
}

func (a *Admin) EventCreate(w http.ResponseWriter, r *http.Request) {
	var in eventInput
	if err := bindForm(r, a.renderer.Location(), &in); err != nil {
		a.eventForm(w, r, uuid.Nil, &in, err)
		return
	}
	if _, err := a.createEvent(r.Context(), &in); err != nil {
		a.eventForm(w, r, uuid.Nil, &in, err)
		return
	}
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
}

func (a *Admin) EventEdit(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		formServerError(w, r, err)
		return
	}
	e, err := a.stores.Events.FindByID(r.Context(), id)
	if err != nil {
		formServerError(w, r, err)
		return
	}
	a.eventForm(w, r, id, newEventInput(e), nil)
}

func (a *Admin) EventUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		formServerError(w, r, err)
		return
	}
	var in eventInput
	if err := bindForm(r, a.renderer.Location(), &in); err != nil {
		a.eventForm(w, r, id, &in, err)
		return
	}
	if _, err := a.updateEvent(r.Context(), id, &in); err != nil {
		a.eventForm(w, r, id, &in, err)
		return
	}
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
}

func (a *Admin) EventDelete(w http.ResponseWriter, r *http.Request) {
	deleteAndRedirect(w, r, a.stores.Events.Delete, "/admin/events")
}

// --- Committee and Durga Sangha ---

// Path is where the directory's back-office pages are mounted.
func (m *Members) Path() string {
	if m.dir == models.DirectorySangha {
		return "/admin/durga-sangha"
	}
	return "/admin/committee"
}

// ListPage renders every member of the directory, inactive ones included.
func (m *Members) ListPage(w http.ResponseWriter, r *http.Request) {
	members, err := m.store.List(r.Context())
	if err != nil {
		slog.Error("list members failed", "directory", m.dir, "error", err)
	}

	m.renderer.Page(w, r, "members", &render.PageData{
		Title:   m.dir.Title(),
		Section: string(m.dir),
		Data: map[string]any{
			"Items":     members,
			"Directory": m.dir.Title(),
			"Path":      m.Path(),
		},
	})
}

func (m *Members) form(w http.ResponseWriter, r *http.Request, id uuid.UUID, in *memberInput, err error) {
	showForm(w, r, m.renderer, "member_form", &render.PageData{
		Title:   m.dir.Title(),
		Section: string(m.dir),
		Data: map[string]any{
			"IsNew":           id == uuid.Nil,
			"ID":              id,
			"Item":            in,
			"Directory":       m.dir.Title(),
			"DefaultCategory": m.dir.DefaultCategory(),
			"Path":            m.Path(),
		},
	}, err)
}

func (m *Members) NewPage(w http.ResponseWriter, r *http.Request) {
	m.form(w, r, uuid.Nil, &memberInput{IsActive: true}, nil)
}

func (m *Members) CreateSubmit(w http.ResponseWriter, r *http.Request) {
	var in memberInput
	if err := bindForm(r, m.renderer.Location(), &in); err != nil {
		m.form(w, r, uuid.Nil, &in, err)
		return
	}
	if _, err := m.create(r.Context(), &in); err != nil {
		m.form(w, r, uuid.Nil, &in, err)
		return
	}
	http.Redirect(w, r, m.Path(), http.StatusSeeOther)
}

func (m *Members) EditPage(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		formServerError(w, r, err)
		return
	}
	member, err := m.store.FindByID(r.Context(), id)
	if err != nil {
		formServerError(w, r, err)
		return
	}
	m.form(w, r, id, newMemberInput(member), nil)
}

func (m *Members) UpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		formServerError(w, r, err)
		return
	}
	var in memberInput
	if err := bindForm(r, m.renderer.Location(), &in); err != nil {
		m.form(w, r, id, &in, err)
		return
	}
	if _, err := m.update(r.Context(), id, &in); err != nil {
		m.form(w, r, id, &in, err)
		return
	}
	http.Redirect(w, r, m.Path(), http.StatusSeeOther)
}

func (m *Members) DeleteSubmit(w http.ResponseWriter, r *http.Request) {
	deleteAndRedirect(w, r, m.store.Delete, m.Path())
}
