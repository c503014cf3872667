// Package router sets up all HTTP routes and middleware chains for the
// temple site. Routes are organized into the public site, the staff
// sign-in flow and the back office.
package router

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"

	"durgamondir/internal/handlers"
	"durgamondir/internal/middleware"
	"durgamondir/internal/models"
	"durgamondir/internal/session"
)

// Options carries the infrastructure the route tree needs besides the
// handler groups.
type Options struct {
	Sessions      *session.Store
	Limits        limiter.Store
	ContactRate   string // ulule format, e.g. "5-M"
	LoginRate     string
	SecureCookies bool

	// Static holds the contents of web/static, served under /static/.
	Static fs.FS

	// MediaDir is served under /media/ when media lives on local disk.
	MediaDir string
}

// New creates the configured chi router with all middleware and route
// groups wired up.
func New(opts Options, public *handlers.Public, auth *handlers.Auth, admin *handlers.Admin) (chi.Router, error) {
	contactLimit, err := middleware.RateLimit(opts.Limits, "contact", opts.ContactRate)
	if err != nil {
		return nil, fmt.Errorf("contact limit: %w", err)
	}
	loginLimit, err := middleware.RateLimit(opts.Limits, "login", opts.LoginRate)
	if err != nil {
		return nil, fmt.Errorf("login limit: %w", err)
	}

	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecureHeaders)

	// Health and metrics: no session, no CSRF.
	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.Handler())

	if opts.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(opts.Static)))
	}
	if opts.MediaDir != "" {
		r.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(opts.MediaDir))))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewCSRF(opts.SecureCookies))
		r.Use(middleware.LoadSession(opts.Sessions))

		// Public site.
		r.Get("/", public.Home)
		r.Get("/page/{slug}", public.Page)
		r.Get("/events", public.Events)
		r.Get("/gallery", public.Gallery)
		r.Get("/album/{id}", public.Album)
		r.Get("/committee", public.Committee)
		r.Get("/durga-sangha", public.DurgaSangha)
		r.Get("/contact", public.ContactPage)
		r.With(contactLimit).Post("/contact", public.ContactSubmit)
		r.Get("/donate", public.Donate)

		r.Route("/admin", func(r chi.Router) {
			adminRoutes(r, auth, admin, loginLimit)
		})
	})

	r.NotFound(public.NotFound)

	return r, nil
}

func adminRoutes(r chi.Router, auth *handlers.Auth, admin *handlers.Admin, loginLimit func(http.Handler) http.Handler) {
	// Sign-in pages, reachable without a session.
	r.Get("/login", auth.LoginPage)
	r.With(loginLimit).Post("/login", auth.LoginSubmit)
	r.Post("/logout", auth.Logout)

	// 2FA requires a session but not a completed second factor.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/2fa/setup", auth.TwoFASetupPage)
		r.Get("/2fa/verify", auth.TwoFAVerifyPage)
		r.With(loginLimit).Post("/2fa/verify", auth.TwoFAVerifySubmit)
	})

	// Signed-in, 2FA-verified staff only.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.Require2FA)
		r.Use(middleware.RequireStaff)

		r.Get("/", admin.Dashboard)
		r.Get("/dashboard", admin.Dashboard)

		r.Get("/pages", admin.PagesList)
		r.Get("/pages/new", admin.PageNew)
		r.Post("/pages", admin.PageCreate)
		r.Get("/pages/{id}/edit", admin.PageEdit)
		r.Post("/pages/{id}", admin.PageUpdate)
		r.Post("/pages/{id}/delete", admin.PageDelete)

		r.Get("/events", admin.EventsList)
		r.Get("/events/new", admin.EventNew)
		r.Post("/events", admin.EventCreate)
		r.Get("/events/{id}/edit", admin.EventEdit)
		r.Post("/events/{id}", admin.EventUpdate)
		r.Post("/events/{id}/delete", admin.EventDelete)

		r.Route("/committee", memberForms(admin.MembersAPI(models.DirectoryCommittee)))
		r.Route("/durga-sangha", memberForms(admin.MembersAPI(models.DirectorySangha)))

		r.Get("/settings", admin.SettingsPage)
		r.Post("/settings", admin.SettingsSave)
		r.Post("/settings/donation", admin.DonationSave)

		r.Get("/contacts", admin.ContactsPage)
		r.Post("/contacts/{id}/read", admin.ContactMarkRead)

		r.Get("/media", admin.MediaLibrary)
		r.Post("/media/upload", admin.MediaUpload)
		r.Post("/media/{id}/delete", admin.MediaDelete)

		r.Route("/api", func(r chi.Router) {
			apiRoutes(r, admin)
		})
	})
}

// resource is a set of JSON CRUD handlers for one collection.
type resource struct {
	list, get, create, update, remove http.HandlerFunc
}

func (res resource) mount(r chi.Router) {
	r.Get("/", res.list)
	r.Post("/", res.create)
	r.Get("/{id}", res.get)
	r.Put("/{id}", res.update)
	r.Delete("/{id}", res.remove)
}

func membersResource(m *handlers.Members) resource {
	return resource{m.List, m.Get, m.Create, m.Update, m.Delete}
}

// memberForms mounts the back-office pages of one directory.
func memberForms(m *handlers.Members) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", m.ListPage)
		r.Get("/new", m.NewPage)
		r.Post("/", m.CreateSubmit)
		r.Get("/{id}/edit", m.EditPage)
		r.Post("/{id}", m.UpdateSubmit)
		r.Post("/{id}/delete", m.DeleteSubmit)
	}
}

func apiRoutes(r chi.Router, a *handlers.Admin) {
	r.Route("/pages", resource{a.APIPagesList, a.APIPageGet, a.APIPageCreate, a.APIPageUpdate, a.APIPageDelete}.mount)
	r.Route("/events", resource{a.APIEventsList, a.APIEventGet, a.APIEventCreate, a.APIEventUpdate, a.APIEventDelete}.mount)
	r.Route("/committee", membersResource(a.MembersAPI(models.DirectoryCommittee)).mount)
	r.Route("/durga-sangha", membersResource(a.MembersAPI(models.DirectorySangha)).mount)
	r.Route("/countdowns", resource{a.APICountdownsList, a.APICountdownGet, a.APICountdownCreate, a.APICountdownUpdate, a.APICountdownDelete}.mount)
	r.Route("/puja-days", resource{a.APIPujaDaysList, a.APIPujaDayGet, a.APIPujaDayCreate, a.APIPujaDayUpdate, a.APIPujaDayDelete}.mount)
	r.Route("/gallery", resource{a.APIGalleryList, a.APIGalleryGet, a.APIGalleryCreate, a.APIGalleryUpdate, a.APIGalleryDelete}.mount)
	r.Route("/sliders", resource{a.APISlidesList, a.APISlideGet, a.APISlideCreate, a.APISlideUpdate, a.APISlideDelete}.mount)

	r.Route("/albums", func(r chi.Router) {
		resource{a.APIAlbumsList, a.APIAlbumGet, a.APIAlbumCreate, a.APIAlbumUpdate, a.APIAlbumDelete}.mount(r)
		r.Get("/{id}/photos", a.APIPhotosList)
		r.Post("/{id}/photos", a.APIPhotoUpload)
	})
	r.Put("/photos/{id}", a.APIPhotoUpdate)
	r.Delete("/photos/{id}", a.APIPhotoDelete)

	// Singletons have no delete route.
	r.Get("/settings", a.APISettingsGet)
	r.Post("/settings", a.APISettingsSave)
	r.Get("/donation", a.APIDonationGet)
	r.Post("/donation", a.APIDonationSave)

	// Contact messages are read-only apart from the read flag.
	r.Get("/contacts.xlsx", a.APIContactsExport)
	r.Route("/contacts", func(r chi.Router) {
		r.Get("/", a.APIContactsList)
		r.Get("/{id}", a.APIContactGet)
		r.Post("/{id}/read", a.APIContactRead)
		r.Delete("/{id}", a.APIContactDelete)
	})
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
