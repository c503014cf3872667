// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the public site and
// the back office. Admin pages support full-page and HTMX partial
// rendering, detected via the HX-Request header.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"durgamondir/internal/bangla"
	"durgamondir/internal/markdown"
	"durgamondir/internal/middleware"
	"durgamondir/internal/models"
	"durgamondir/internal/session"
	"durgamondir/internal/storage"
)

//go:embed templates/admin/*.html templates/public/*.html
var templateFS embed.FS

// PageData holds all data passed to admin templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Section   string         // Active sidebar section (e.g., "dashboard", "contacts")
	Session   *session.Data  // Current user session (nil if unauthenticated)
	CSRFToken string         // CSRF token for forms and HTMX headers
	Data      map[string]any // Page-specific data
	Flashes   []Flash        // One-time notification messages
}

// Flash represents a one-time notification message displayed to the user.
type Flash struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// SiteData holds the data shared by every public page: site settings and
// the menu, plus the page-specific values in Data.
type SiteData struct {
	Title     string
	Section   string
	Site      *models.SiteSettings
	Menu      []models.Page
	CSRFToken string
	Now       time.Time
	Data      map[string]any
}

// SiteTitle returns the configured site title or the default.
func (d *SiteData) SiteTitle() string {
	return d.Site.Title()
}

// Renderer holds the parsed admin and public template sets.
type Renderer struct {
	admin   map[string]*template.Template
	public  map[string]*template.Template
	funcMap template.FuncMap
	loc     *time.Location
}

// standaloneTemplates lists admin templates that render as full HTML pages
// without the base layout (they have their own <html>, <head>, etc.).
var standaloneTemplates = map[string]bool{
	"login":      true,
	"2fa_setup":  true,
	"2fa_verify": true,
}

// New parses all embedded templates. media resolves stored keys to public
// URLs and loc is the timezone dates are displayed in. When devMode is true
// the admin layout loads its assets from CDN.
func New(devMode bool, media storage.Backend, loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.UTC
	}

	r := &Renderer{
		admin:   make(map[string]*template.Template),
		public:  make(map[string]*template.Template),
		funcMap: funcMap(devMode, media, loc),
		loc:     loc,
	}

	if err := r.parseSet("templates/admin", r.admin, standaloneTemplates); err != nil {
		return nil, err
	}
	if err := r.parseSet("templates/public", r.public, nil); err != nil {
		return nil, err
	}
	return r, nil
}

// Location is the timezone dates are displayed and entered in.
func (rn *Renderer) Location() *time.Location {
	return rn.loc
}

func funcMap(devMode bool, media storage.Backend, loc *time.Location) template.FuncMap {
	return template.FuncMap{
		"activeClass": func(current, target string) string {
			if current == target {
				return "active"
			}
			return ""
		},
		// deref safely dereferences a string pointer for use in templates.
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"isDev": func() bool {
			return devMode
		},
		// uuidEq compares a *uuid.UUID pointer with a uuid.UUID value.
		"uuidEq": func(ptr *uuid.UUID, val uuid.UUID) bool {
			return ptr != nil && *ptr == val
		},
		// bn renders any value with Bengali digits.
		"bn": func(v any) string {
			return bangla.Digits(fmt.Sprint(v))
		},
		"bnShortDate": func(t time.Time) string {
			return bangla.ShortDate(t.In(loc))
		},
		"bnLongDate": func(t time.Time) string {
			return bangla.LongDate(t.In(loc))
		},
		"bnDateTime": func(t time.Time) string {
			return bangla.DateTime(t.In(loc))
		},
		"localTime": func(t time.Time) time.Time {
			return t.In(loc)
		},
		"markdown": markdown.Render,
		"media": func(key string) string {
			return MediaURL(media, key)
		},
	}
}

// MediaURL turns a stored key into a URL. Absolute URLs and empty keys
// pass through unchanged.
func MediaURL(media storage.Backend, key string) string {
	if key == "" || strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") || strings.HasPrefix(key, "/") {
		return key
	}
	if media == nil {
		return "/media/" + key
	}
	return media.URL(key)
}

// parseSet parses every page under dir paired with dir/base.html, except
// the names in standalone which are parsed on their own.
func (rn *Renderer) parseSet(dir string, dst map[string]*template.Template, standalone map[string]bool) error {
	entries, err := fs.ReadDir(templateFS, dir)
	if err != nil {
		return fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" || !strings.HasSuffix(name, ".html") {
			continue
		}
		tmplName := strings.TrimSuffix(name, ".html")

		var tmpl *template.Template
		if standalone[tmplName] {
			tmpl, err = template.New(name).Funcs(rn.funcMap).ParseFS(templateFS, dir+"/"+name)
		} else {
			tmpl, err = template.New("base.html").Funcs(rn.funcMap).ParseFS(templateFS, dir+"/base.html", dir+"/"+name)
		}
		if err != nil {
			return fmt.Errorf("parse template %s/%s: %w", dir, name, err)
		}
		dst[tmplName] = tmpl
	}
	return nil
}

// Page renders a full admin page or an HTMX partial, depending on the
// request headers. For HTMX requests, only the "content" block is sent.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.PageStatus(w, r, http.StatusOK, name, data)
}

// PageStatus is Page with an explicit status code, used when a form is
// shown again after a failed submission.
func (rn *Renderer) PageStatus(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	tmpl, ok := rn.admin[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}

	execName := "base.html"
	switch {
	case isHTMX(r):
		execName = "content"
	case standaloneTemplates[name]:
		execName = name + ".html"
	}

	write(w, status, tmpl, execName, data)
}

// Public renders a public site page with the given status code.
func (rn *Renderer) Public(w http.ResponseWriter, r *http.Request, status int, name string, data *SiteData) {
	tmpl, ok := rn.public[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	if data.Now.IsZero() {
		data.Now = time.Now()
	}
	if data.Data == nil {
		data.Data = map[string]any{}
	}

	write(w, status, tmpl, "base.html", data)
}

// write executes the template into a buffer so a failing template never
// leaves a half-written page behind.
func write(w http.ResponseWriter, status int, tmpl *template.Template, name string, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("template execute failed", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
