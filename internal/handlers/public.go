// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"durgamondir/internal/listing"
	"durgamondir/internal/models"
	"durgamondir/internal/render"
	"durgamondir/internal/storage"
	"durgamondir/internal/store"
	"durgamondir/internal/timeline"
)

// Homepage limits.
const (
	homeSlides  = 5
	homeEvents  = 3
	homeGallery = 6
)

// ContactSuccessMessage acknowledges a stored contact message.
const ContactSuccessMessage = "আপনার বার্তা সফলভাবে পাঠানো হয়েছে!"

const contactFailureMessage = "দুঃখিত, বার্তাটি পাঠানো যায়নি। অনুগ্রহ করে আবার চেষ্টা করুন।"

// Public groups the handlers of the public site. Every page is derived
// from the database on each request; nothing is cached.
type Public struct {
	renderer *render.Renderer
	stores   *store.Stores
	media    storage.Backend
	clock    timeline.Clock
}

// NewPublic creates a new Public handler group.
func NewPublic(renderer *render.Renderer, stores *store.Stores, media storage.Backend, clock timeline.Clock) *Public {
	if clock == nil {
		clock = timeline.SystemClock{}
	}
	return &Public{
		renderer: renderer,
		stores:   stores,
		media:    media,
		clock:    clock,
	}
}

// siteContext loads the data every public page shows: site settings and
// the menu. Failures are logged and the page renders with defaults.
func (p *Public) siteContext(ctx context.Context, title, section string) *render.SiteData {
	data := &render.SiteData{
		Title:   title,
		Section: section,
		Now:     p.clock.Now(),
		Data:    map[string]any{},
	}

	settings, err := p.stores.Settings.Get(ctx)
	switch {
	case err == nil:
		data.Site = settings
	case !errors.Is(err, store.ErrNotFound):
		slog.Error("load site settings failed", "error", err)
	}

	menu, err := p.stores.Pages.ListMenu(ctx)
	if err != nil {
		slog.Error("load menu failed", "error", err)
	}
	data.Menu = menu

	return data
}

// Home renders the homepage.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := p.siteContext(ctx, "", "home")
	now := data.Now

	slides, err := p.stores.Slides.ListActive(ctx, homeSlides)
	if err != nil {
		slog.Error("list slides failed", "error", err)
	}
	events, err := p.stores.Events.Next(ctx, now, homeEvents)
	if err != nil {
		slog.Error("list upcoming events failed", "error", err)
	}
	featured, err := p.stores.Gallery.ListFeatured(ctx, homeGallery)
	if err != nil {
		slog.Error("list featured gallery failed", "error", err)
	}
	pujaDays, err := p.stores.PujaDays.ListActive(ctx)
	if err != nil {
		slog.Error("list puja days failed", "error", err)
	}

	data.Data["Slides"] = slides
	data.Data["Events"] = events
	data.Data["Gallery"] = featured
	data.Data["PujaDays"] = pujaDays

	countdown, err := p.stores.Countdowns.FirstActive(ctx)
	switch {
	case err == nil && countdown.IsLive(now):
		data.Data["Countdown"] = countdown
		data.Data["DaysRemaining"] = countdown.DaysRemaining(now)
	case err != nil && !errors.Is(err, store.ErrNotFound):
		slog.Error("load countdown failed", "error", err)
	}

	donation, err := p.stores.Donation.Get(ctx)
	switch {
	case err == nil:
		data.Data["Donation"] = donation
	case !errors.Is(err, store.ErrNotFound):
		slog.Error("load donation info failed", "error", err)
	}

	p.renderer.Public(w, r, http.StatusOK, "home", data)
}

// Page renders a published page by its slug.
func (p *Public) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")

	page, err := p.stores.Pages.FindPublishedBySlug(ctx, slugParam)
	if err != nil {
		p.lookupFailed(w, r, err, "find page by slug", "slug", slugParam)
		return
	}

	data := p.siteContext(ctx, page.Title, "page")
	data.Data["Page"] = page
	p.renderer.Public(w, r, http.StatusOK, "page", data)
}

// Events renders the paginated events list, filtered by ?filter=.
func (p *Public) Events(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := p.siteContext(ctx, "অনুষ্ঠানসূচি", "events")

	events, err := p.stores.Events.ListActive(ctx)
	if err != nil {
		p.serverError(w, r, err, "list events")
		return
	}

	filter := listing.ParseEventFilter(r.URL.Query().Get("filter"))
	ordered := listing.OrderEvents(events, filter, data.Now)

	data.Data["Filter"] = string(filter)
	data.Data["Events"] = listing.Paginate(ordered, listing.ParsePage(r.URL.Query().Get("page")), listing.EventPageSize)
	p.renderer.Public(w, r, http.StatusOK, "events", data)
}

// Gallery renders the album list, newest first.
func (p *Public) Gallery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := p.siteContext(ctx, "গ্যালারি", "gallery")

	total, err := p.stores.Albums.Count(ctx)
	if err != nil {
		p.serverError(w, r, err, "count albums")
		return
	}
	page := listing.Clamp(listing.ParsePage(r.URL.Query().Get("page")), total, listing.AlbumPageSize)

	albums, err := p.stores.Albums.List(ctx, listing.AlbumPageSize, listing.Offset(page, listing.AlbumPageSize))
	if err != nil {
		p.serverError(w, r, err, "list albums")
		return
	}

	data.Data["Albums"] = listing.NewPage(albums, page, total, listing.AlbumPageSize)
	p.renderer.Public(w, r, http.StatusOK, "gallery", data)
}

// photoJSON is one entry of the album photo feed.
type photoJSON struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	ImageURL    string    `json:"image_url"`
	Description string    `json:"description"`
}

// albumFeed is the XHR response of the album page.
type albumFeed struct {
	Photos   []photoJSON `json:"photos"`
	HasNext  bool        `json:"has_next"`
	NextPage *int        `json:"next_page"`
}

// Album renders an album with its first photos. Requests sent with
// X-Requested-With: XMLHttpRequest receive the next page as JSON instead.
func (p *Public) Album(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		p.notFound(w, r)
		return
	}
	album, err := p.stores.Albums.FindByID(ctx, id)
	if err != nil {
		p.lookupFailed(w, r, err, "find album", "id", id)
		return
	}

	page := 1
	if isXHR(r) {
		page = listing.ParsePage(r.URL.Query().Get("page"))
	}

	photos, hasNext, err := p.photoPage(ctx, album.ID, page)
	if err != nil {
		if isXHR(r) {
			slog.Error("list album photos failed", "error", err, "album", id)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			return
		}
		p.serverError(w, r, err, "list album photos")
		return
	}

	if isXHR(r) {
		feed := albumFeed{Photos: make([]photoJSON, 0, len(photos)), HasNext: hasNext}
		for _, ph := range photos {
			feed.Photos = append(feed.Photos, photoJSON{
				ID:          ph.ID,
				Title:       ph.Title,
				ImageURL:    render.MediaURL(p.media, ph.Image),
				Description: ph.Description,
			})
		}
		if hasNext {
			next := page + 1
			feed.NextPage = &next
		}
		writeJSON(w, http.StatusOK, feed)
		return
	}

	data := p.siteContext(ctx, album.Title, "gallery")
	data.Data["Album"] = album
	data.Data["Photos"] = photos
	data.Data["HasNext"] = hasNext
	data.Data["NextPage"] = page + 1
	p.renderer.Public(w, r, http.StatusOK, "album", data)
}

// photoPage fetches one page of photos plus one extra row to learn whether
// another page follows.
func (p *Public) photoPage(ctx context.Context, albumID uuid.UUID, page int) ([]models.Photo, bool, error) {
	size := listing.PhotoPageSize
	photos, err := p.stores.Photos.ListByAlbum(ctx, albumID, size+1, listing.Offset(page, size))
	if err != nil {
		return nil, false, err
	}
	if len(photos) > size {
		return photos[:size], true, nil
	}
	return photos, false, nil
}

// Committee renders the executive committee directory.
func (p *Public) Committee(w http.ResponseWriter, r *http.Request) {
	p.directory(w, r, models.DirectoryCommittee, "committee")
}

// DurgaSangha renders the Durga Sangha directory.
func (p *Public) DurgaSangha(w http.ResponseWriter, r *http.Request) {
	p.directory(w, r, models.DirectorySangha, "durga_sangha")
}

func (p *Public) directory(w http.ResponseWriter, r *http.Request, dir models.Directory, section string) {
	ctx := r.Context()
	data := p.siteContext(ctx, dir.Title(), section)

	members, err := p.stores.Members(dir).ListActive(ctx)
	if err != nil {
		p.serverError(w, r, err, "list "+string(dir)+" members")
		return
	}

	data.Data["Groups"] = listing.GroupMembers(members)
	p.renderer.Public(w, r, http.StatusOK, "committee", data)
}

// contactForm is the payload of the public contact form.
type contactForm struct {
	Name    string `json:"name" validate:"required,max=100,no_html"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone" validate:"max=20"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

func contactFormFromRequest(r *http.Request) *contactForm {
	return &contactForm{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Email:   strings.TrimSpace(r.FormValue("email")),
		Phone:   strings.TrimSpace(r.FormValue("phone")),
		Subject: strings.TrimSpace(r.FormValue("subject")),
		Message: strings.TrimSpace(r.FormValue("message")),
	}
}

// ContactPage renders the contact form.
func (p *Public) ContactPage(w http.ResponseWriter, r *http.Request) {
	data := p.siteContext(r.Context(), "যোগাযোগ", "contact")
	p.renderer.Public(w, r, http.StatusOK, "contact", data)
}

// ContactSubmit stores a contact message. XHR submissions get a JSON
// acknowledgement; plain form posts re-render the page.
func (p *Public) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	form := contactFormFromRequest(r)

	if err := validateStruct(form); err != nil {
		var verr *validationError
		if !errors.As(err, &verr) {
			slog.Error("validate contact form failed", "error", err)
			verr = &validationError{}
		}
		if isXHR(r) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"success": false, "errors": verr.Fields})
			return
		}
		data := p.siteContext(ctx, "যোগাযোগ", "contact")
		data.Data["Form"] = form
		data.Data["Errors"] = verr.Fields
		p.renderer.Public(w, r, http.StatusUnprocessableEntity, "contact", data)
		return
	}

	_, err := p.stores.Contacts.Create(ctx, &models.ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Subject: form.Subject,
		Message: form.Message,
	})
	if err != nil {
		slog.Error("create contact message failed", "error", err)
		if isXHR(r) {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": contactFailureMessage})
			return
		}
		data := p.siteContext(ctx, "যোগাযোগ", "contact")
		data.Data["Form"] = form
		data.Data["Error"] = contactFailureMessage
		p.renderer.Public(w, r, http.StatusInternalServerError, "contact", data)
		return
	}

	if isXHR(r) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": ContactSuccessMessage})
		return
	}

	data := p.siteContext(ctx, "যোগাযোগ", "contact")
	data.Data["Success"] = ContactSuccessMessage
	p.renderer.Public(w, r, http.StatusOK, "contact", data)
}

// Donate renders the active donation information.
func (p *Public) Donate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := p.siteContext(ctx, "দান করুন", "donate")

	donation, err := p.stores.Donation.Get(ctx)
	switch {
	case err == nil:
		data.Data["Donation"] = donation
	case !errors.Is(err, store.ErrNotFound):
		p.serverError(w, r, err, "load donation info")
		return
	}

	p.renderer.Public(w, r, http.StatusOK, "donate", data)
}

// NotFound renders the not-found page; used as the router's 404 handler.
func (p *Public) NotFound(w http.ResponseWriter, r *http.Request) {
	p.notFound(w, r)
}

func (p *Public) notFound(w http.ResponseWriter, r *http.Request) {
	data := p.siteContext(r.Context(), "পাতা পাওয়া যায়নি", "")
	p.renderer.Public(w, r, http.StatusNotFound, "not_found", data)
}

func (p *Public) serverError(w http.ResponseWriter, r *http.Request, err error, op string) {
	slog.Error(op+" failed", "error", err, "path", r.URL.Path)
	data := p.siteContext(r.Context(), "ত্রুটি", "")
	p.renderer.Public(w, r, http.StatusInternalServerError, "error", data)
}

// lookupFailed renders 404 for ErrNotFound and 500 for anything else.
func (p *Public) lookupFailed(w http.ResponseWriter, r *http.Request, err error, op string, args ...any) {
	if errors.Is(err, store.ErrNotFound) {
		p.notFound(w, r)
		return
	}
	slog.Error(op+" failed", append([]any{"error", err}, args...)...)
	data := p.siteContext(r.Context(), "ত্রুটি", "")
	p.renderer.Public(w, r, http.StatusInternalServerError, "error", data)
}
