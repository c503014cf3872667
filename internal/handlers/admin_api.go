package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"durgamondir/internal/middleware"
	"durgamondir/internal/models"
	"durgamondir/internal/render"
	"durgamondir/internal/slug"
	"durgamondir/internal/store"
)

// respond writes v as JSON or maps err through writeAPIError.
func respond(w http.ResponseWriter, r *http.Request, status int, v any, err error) {
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	writeJSON(w, status, v)
}

// getByID serves GET /{id} for any store lookup.
func getByID[T any](w http.ResponseWriter, r *http.Request, find func(context.Context, uuid.UUID) (*T, error)) {
	id, err := urlID(r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	v, err := find(r.Context(), id)
	respond(w, r, http.StatusOK, v, err)
}

// deleteByID serves DELETE /{id}.
func deleteByID(w http.ResponseWriter, r *http.Request, del func(context.Context, uuid.UUID) error) {
	id, err := urlID(r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	if err := del(r.Context(), id); err != nil {
		writeAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// bindJSON decodes and validates a request body.
func bindJSON(w http.ResponseWriter, r *http.Request, dst interface{ normalize() }) error {
	if err := decodeJSON(w, r, dst); err != nil {
		return err
	}
	dst.normalize()
	return validateStruct(dst)
}

// --- Pages ---

type pageInput struct {
	Title           string     `json:"title" validate:"required,max=200"`
	Slug            string     `json:"slug" validate:"required,max=200,slug"`
	Content         string     `json:"content" validate:"max=100000"`
	MetaDescription string     `json:"meta_description" validate:"max=255"`
	FeaturedImage   string     `json:"featured_image" validate:"max=500"`
	IsPublished     bool       `json:"is_published"`
	ShowInMenu      bool       `json:"show_in_menu"`
	MenuOrder       int        `json:"menu_order"`
	ParentID        *uuid.UUID `json:"parent_id"`
}

// normalize trims input and fills an empty slug from the title.
func (in *pageInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" {
		in.Slug = slug.Generate(in.Title)
	}
	in.MetaDescription = strings.TrimSpace(in.MetaDescription)
}

func (in *pageInput) apply(p *models.Page) {
	p.Title = in.Title
	p.Slug = in.Slug
	p.Content = in.Content
	p.MetaDescription = in.MetaDescription
	p.FeaturedImage = in.FeaturedImage
	p.IsPublished = in.IsPublished
	p.ShowInMenu = in.ShowInMenu
	p.MenuOrder = in.MenuOrder
	p.ParentID = in.ParentID
}

func (a *Admin) APIPagesList(w http.ResponseWriter, r *http.Request) {
	pages, err := a.stores.Pages.List(r.Context())
	respond(w, r, http.StatusOK, pages, err)
}

func (a *Admin) APIPageGet(w http.ResponseWriter, r *http.Request) {
	getByID(w, r, a.stores.Pages.FindByID)
}

// newPageInput fills the form values of an existing page.
func newPageInput(p *models.Page) *pageInput {
	return &pageInput{
		Title:           p.Title,
		Slug:            p.Slug,
		Content:         p.Content,
		MetaDescription: p.MetaDescription,
		FeaturedImage:   p.FeaturedImage,
		IsPublished:     p.IsPublished,
		ShowInMenu:      p.ShowInMenu,
		MenuOrder:       p.MenuOrder,
		ParentID:        p.ParentID,
	}
}

// createPage stores a page authored by the signed-in staff user.
func (a *Admin) createPage(ctx context.Context, in *pageInput) (*models.Page, error) {
	p := &models.Page{AuthorID: middleware.SessionFromCtx(ctx).UserID}
	in.apply(p)
	return a.stores.Pages.Create(ctx, p)
}

func (a *Admin) updatePage(ctx context.Context, id uuid.UUID, in *pageInput) (*models.Page, error) {
	p, err := a.stores.Pages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(p)
	if err := a.stores.Pages.Update(ctx, p); err != nil {
		return nil, err
	}
	return a.stores.Pages.FindByID(ctx, id)
}

// APIPageCreate creates a page authored by the signed-in staff user.
func (a *Admin) APIPageCreate(w http.ResponseWriter, r *http.Request) {
	var in pageInput
	if err := bindJSON(w, r, &in); err != nil {
		writeAPIError(w, r, err)
		return
	}
	created, err := a.createPage(r.Context(), &in)
	respond(w, r, http.StatusCreated, created, err)
}

func (a *Admin) APIPageUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	var in pageInput
	if err := bindJSON(w, r, &in); err != nil {
		writeAPIError(w, r, err)
		return
	}
	updated, err := a.updatePage(r.Context(), id, &in)
	respond(w, r, http.StatusOK, updated, err)
}

func (a *Admin) APIPageDelete(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, a.stores.Pages.Delete)
}

// --- Events ---

type eventInput struct {
	Title         string    `json:"title" validate:"required,max=200"`
	Description   string    `json:"description" validate:"max=100000"`
	DateTime      time.Time `json:"date_time" validate:"required"`
	Location      string    `json:"location" validate:"required,max=200"`
	FeaturedImage string    `json:"featured_image" validate:"max=500"`
	IsFeatured    bool      `json:"is_featured"`
	IsActive      bool      `json:"is_active"`
}

func (in *eventInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
}

func (in *eventInput) apply(e *models.Event) {
	e.Title = in.Title
	e.Description = in.Description
	e.DateTime = in.DateTime
	e.Location = in.Location
	e.FeaturedImage = in.FeaturedImage
	e.IsFeatured = in.IsFeatured
	e.IsActive = in.IsActive
}

func (a *Admin) APIEventsList(w http.ResponseWriter, r *http.Request) {
	events, err := a.stores.Events.List(r.Context())
	respond(w, r, http.StatusOK, events, err)
}

func (a *Admin) APIEventGet(w http.ResponseWriter, r *http.Request) {
	getByID(w, r, a.stores.Events.FindByID)
}

func newEventInput(e *models.Event) *eventInput {
	return &eventInput{
		Title:         e.Title,
		Description:   e.Description,
		DateTime:      e.DateTime,
		Location:      e.Location,
		FeaturedImage: e.FeaturedImage,
		IsFeatured:    e.IsFeatured,
		IsActive:      e.IsActive,
	}
}

func (a *Admin) createEvent(ctx context.Context, in *eventInput) (*models.Event, error) {
	e := &models.Event{}
	in.apply(e)
	return a.stores.Events.Create(ctx, e)
}

func (a *Admin) updateEvent(ctx context.Context, id uuid.UUID, in *eventInput) (*models.Event, error) {
	e, err := a.stores.Events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(e)
	if err := a.stores.Events.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (a *Admin) APIEventCreate(w http.ResponseWriter, r *http.Request) {
	var in eventInput
	if err := bindJSON(w, r, &in); err != nil {
		writeAPIError(w, r, err)
		return
	}
	created, err := a.createEvent(r.Context(), &in)
	respond(w, r, http.StatusCreated, created, err)
}

func (a *Admin) APIEventUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	var in eventInput
	if err := bindJSON(w, r, &in); err != nil {
		writeAPIError(w, r, err)
		return
	}
	updated, err := a.updateEvent(r.Context(), id, &in)
	respond(w, r, http.StatusOK, updated, err)
}

func (a *Admin) APIEventDelete(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, a.stores.Events.Delete)
}

// --- Committee and Durga Sangha ---

type memberInput struct {
	Name          string `json:"name" validate:"required,max=100"`
	Position      string `json:"position" validate:"required,max=100"`
	Category      string `json:"category" validate:"max=100"`
	CategoryOrder int    `json:"category_order" validate:"gte=0"`
	Image         string `json:"image" validate:"max=500"`
	Phone         string `json:"phone" validate:"max=20"`
	Description   string `json:"description" validate:"max=5000"`
	Order         int    `json:"order" validate:"gte=0"`
	IsActive      bool   `json:"is_active"`
}

func (in *memberInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Position = strings.TrimSpace(in.Position)
	in.Category = strings.TrimSpace(in.Category)
	in.Phone = strings.TrimSpace(in.Phone)
}

func (in *memberInput) apply(m *models.Member) {
	m.Name = in.Name
	m.Position = in.Position
	m.Category = in.Category
	m.CategoryOrder = in.CategoryOrder
	m.Image = in.Image
	m.Phone = in.Phone
	m.Description = in.Description
	m.Order = in.Order
	m.IsActive = in.IsActive
}

func newMemberInput(m *models.Member) *memberInput {
	return &memberInput{
		Name:          m.Name,
		Position:      m.Position,
		Category:      m.Category,
		CategoryOrder: m.CategoryOrder,
		Image:         m.Image,
		Phone:         m.Phone,
		Description:   m.Description,
		Order:         m.Order,
		IsActive:      m.IsActive,
	}
}

// Members serves the JSON routes and the back-office forms of one
// directory.
type Members struct {
	dir      models.Directory
	store    *store.MemberStore
	renderer *render.Renderer
}

// MembersAPI returns the handlers for the given directory.
func (a *Admin) MembersAPI(dir models.Directory) *Members {
	return &Members{dir: dir, store: a.stores.Members(dir), renderer: a.renderer}
}

func (m *Members) create(ctx context.Context, in *memberInput) (*models.Member, error) {
	member := &models.Member{}
	in.apply(member)
	return m.store.Create(ctx, member)
}

func (m *Members) update(ctx context.Context, id uuid.UUID, in *memberInput) (*models.Member, error) {
	member, err := m.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(member)
	if err := m.store.Update(ctx, member); err != nil {
		return nil, err
	}
	return m.store.FindByID(ctx, id)
}

func (m *Members) List(w http.ResponseWriter, r *http.Request) {
	members, err := m.store.List(r.Context())
	respond(w, r, http.StatusOK, members, err)
}

func (m *Members) Get(w http.ResponseWriter, r *http.Request) {
	getByID(w, r, m.store.FindByID)
}

func (m *Members) Create(w http.ResponseWriter, r *http.Request) {
	var in memberInput
	if err := bindJSON(w, r, &in); err != nil {
		writeAPIError(w, r, err)
		return
	}
	created, err := m.create(r.Context(), &in)
	respond(w, r, http.StatusCreated, created, err)
}

func (m *Members) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	var in memberInput
	if err := bindJSON(w, r, &in); err != nil {
		writeAPIError(w, r, err)
		return
	}
	updated, err := m.update(r.Context(), id, &in)
	respond(w, r, http.StatusOK, updated, err)
}

func (m *Members) Delete(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, m.store.Delete)
}

// --- Countdowns ---

type countdownInput struct {
	Title           string    `json:"title" validate:"max=200"`
	TargetDate      time.Time `json:"target_date" validate:"required"`
	BackgroundImage string    `json:"background_image" validate:"max=500"`
	IsActive        bool      `json:"is_active"`
	MessageBefore   string    `json:"message_before" validate:"max=100"`
	MessageAfter    string    `json:"message_after" validate:"max=100"`
}

func (in *countdownInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.MessageBefore = strings.TrimSpace(in.MessageBefore)
	in.MessageAfter = strings.TrimSpace(in.MessageAfter)
}

func (in *countdownInput) apply(c *models.Countdown) {
	c.Title = in.Title
	c.TargetDate = in.TargetDate
	c.BackgroundImage = in.BackgroundImage
	c.IsActive = in.IsActive
	c.MessageBefore = in.MessageBefore
	c.MessageAfter = in.MessageAfter
}

func (a *Admin) APICountdownsList(w http.ResponseWriter, r *http.Request) {
	list, err := a.stores.Countdowns.List(r.Context())
	respond(w, r, http.StatusOK, list, err)
}

func (a *Admin) APICountdownGet(w http.ResponseWriter, r *http.Request) {
	getByID(w, r, a.stores.Countdowns.FindByID)
}

func (a *Admin) APICountdownCreate(w http.ResponseWriter, r *http.Request) {
	var in countdownInput
	if err := bindJSON(w, r, &in); err != nil {
		writeAPIError(w, r, err)
		return
	}
	c := &models.Countdown{}
	in.apply(c)
	created, err := a.stores.Countdowns.Create(r.Context(), c)
	respond(w, r, http.StatusCreated, created, err)
}

func (a *Admin) APICountdownUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := urlID(r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	var in countdownInput
	if err := bindJSON(w, r, &in); err != nil {
		writeAPIError(w, r, err)
		return
	}
	c, err := a.stores.Countdowns.FindByID(ctx, id)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	in.apply(c)
	if err := a.stores.Countdowns.Update(ctx, c); err != nil {
		writeAPIError(w, r, err)
		return
	}
	updated, err := a.stores.Countdowns.FindByID(ctx, id)
	respond(w, r, http.StatusOK, updated, err)
}

func (a *Admin) APICountdownDelete(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, a.stores.Countdowns.Delete)
}

// --- Puja days ---

type pujaDayInput struct {
	Title       string `json:"title" validate:"required,max=100"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Image       string `json:"image" validate:"max=500"`
	Description string `json:"description" validate:"max=5000"`
	IsActive    bool   `json:"is_active"`
	Order       int    `json:"order" validate:"gte=0"`
}

func (in *pujaDayInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Date = strings.TrimSpace(in.Date)
}

// apply copies the input into p; Date has already been validated.
func (in *pujaDayInput) apply(p *models.PujaDay) {
	date, _ := time.Parse(time.DateOnly, in.Date)
	p.Title = in.Title
	p.Date = date
	p.Image = in.Image
	p.Description = in.Description
	p.IsActive = in.IsActive
	p.Order = in.Order
}

func (a *Admin) APIPujaDaysList(w http.ResponseWriter, r *http.Request) {
	list, err := a.stores.PujaDays.List(r.Context())
	respond(w, r, http.StatusOK, list, err)
}

func (a *Admin) APIPujaDayGet(w http.ResponseWriter, r *http.Request) {
	getByID(w, r, a.stores.PujaDays.FindByID)
}

func (a *Admin) APIPujaDayCreate(w http.ResponseWriter, r *http.Request) {
	var in pujaDayInput
	if err := bindJSON(w, r, &in); err != nil {
		writeAPIError(w, r, err)
		return
	}
	p := &models.PujaDay{}
	in.apply(p)
	created, err := a.stores.PujaDays.Create(r.Context(), p)
	respond(w, r, http.StatusCreated, created, err)
}

func (a *Admin) APIPujaDayUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := urlID(r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	var in pujaDayInput
	if err := bindJSON(w, r, &in); err != nil {
		writeAPIError(w, r, err)
		return
	}
	p, err := a.stores.PujaDays.FindByID(ctx, id)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	in.apply(p)
	respond(w, r, http.StatusOK, p, a.stores.PujaDays.Update(ctx, p))
}

func (a *Admin) APIPujaDayDelete(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, a.stores.PujaDays.Delete)
}

// --- Site settings (singleton) ---

type settingsInput struct {
	SiteTitle       string `json:"site_title" validate:"max=200"`
	Tagline         string `json:"site_tagline" validate:"max=200"`
	Description     string `json:"site_description" validate:"max=5000"`
	Logo            string `json:"logo" validate:"max=500"`
	Favicon         string `json:"favicon" validate:"max=500"`
	ContactEmail    string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone    string `json:"contact_phone" validate:"max=20"`
	Address         string `json:"address" validate:"max=1000"`
	FacebookURL     string `json:"facebook_url" validate:"omitempty,http_url"`
	YoutubeURL      string `json:"youtube_url" validate:"omitempty,http_url"`
	GoogleMapURL    string `json:"google_map_url" validate:"omitempty,http_url"`
	FooterText      string `json:"footer_text" validate:"max=1000"`
	PrasadHallImage string `json:"prasad_hall_image" validate:"max=500"`
}

func (in *settingsInput) normalize() {
	in.SiteTitle = strings.TrimSpace(in.SiteTitle)
	if in.SiteTitle == "" {
		in.SiteTitle = models.DefaultSiteTitle
	}
	in.ContactEmail = strings.TrimSpace(in.ContactEmail)
}

func (in *settingsInput) apply(s *models.SiteSettings) {
	s.SiteTitle = in.SiteTitle
	s.Tagline = in.Tagline
	s.Description = in.Description
	s.Logo = in.Logo
	s.Favicon = in.Favicon
	s.ContactEmail = in.ContactEmail
	s.ContactPhone = in.ContactPhone
	s.Address = in.Address
	s.FacebookURL = in.FacebookURL
	s.YoutubeURL = in.YoutubeURL
	s.GoogleMapURL = in.GoogleMapURL
	s.FooterText = in.FooterText
	s.PrasadHallImage = in.PrasadHallImage
}

func (a *Admin) APISettingsGet(w http.ResponseWriter, r *http.Request) {
	s, err := a.stores.Settings.Get(r.Context())
	respond(w, r, http.StatusOK, s, err)
}

func newSettingsInput(s *models.SiteSettings) *settingsInput {
	return &settingsInput{
		SiteTitle:       s.SiteTitle,
		Tagline:         s.Tagline,
		Description:     s.Description,
		Logo:            s.Logo,
		Favicon:         s.Favicon,
		ContactEmail:    s.ContactEmail,
		ContactPhone:    s.ContactPhone,
		Address:         s.Address,
		FacebookURL:     s.FacebookURL,
		YoutubeURL:      s.YoutubeURL,
		GoogleMapURL:    s.GoogleMapURL,
		FooterText:      s.FooterText,
		PrasadHallImage: s.PrasadHallImage,
	}
}

// saveSettings updates the settings row, creating it when the table is
// still empty. created reports which of the two happened. A concurrent
// second create fails with ErrSingletonExists.
func (a *Admin) saveSettings(ctx context.Context, in *settingsInput) (saved *models.SiteSettings, created bool, err error) {
	current, err := a.stores.Settings.Get(ctx)
	if errors.Is(err, store.ErrNotFound) {
		s := &models.SiteSettings{}
		in.apply(s)
		saved, err = a.stores.Settings.Create(ctx, s)
		return saved, true, err
	}
	if err != nil {
		return nil, false, err
	}

	in.apply(current)
	if err := a.stores.Settings.Update(ctx, current); err != nil {
		return nil, false, err
	}
	saved, err = a.stores.Settings.Get(ctx)
	return saved, false, err
}

// APISettingsSave answers 201 when the settings row was created and 200
// when it was updated.
func (a *Admin) APISettingsSave(w http.ResponseWriter, r *http.Request) {
	var in settingsInput
	if err := bindJSON(w, r, &in); err != nil {
		writeAPIError(w, r, err)
		return
	}
	saved, created, err := a.saveSettings(r.Context(), &in)
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respond(w, r, status, saved, err)
}

// --- Donation info (singleton) ---

type donationInput struct {
	BankName          string `json:"bank_name" validate:"max=200"`
	BankAccountName   string `json:"bank_account_name" validate:"max=200"`
	BankAccountNumber string `json:"bank_account_number" validate:"max=100"`
	BankBranch        string `json:"bank_branch" validate:"max=200"`
	BankRoutingNumber string `json:"bank_routing_number" validate:"max=50"`
	BkashNumber       string `json:"bkash_number" validate:"max=20"`
	NagadNumber       string `json:"nagad_number" validate:"max=20"`
	RocketNumber      string `json:"rocket_number" validate:"max=20"`
	OtherPaymentInfo  string `json:"other_payment_info" validate:"max=5000"`
	DonationNote      string `json:"donation_note" validate:"max=5000"`
	IsActive          bool   `json:"is_active"`
}

func (in *donationInput) normalize() {
	in.BankAccountNumber = strings.TrimSpace(in.BankAccountNumber)
	in.BkashNumber = strings.TrimSpace(in.BkashNumber)
	in.NagadNumber = strings.TrimSpace(in.NagadNumber)
	in.RocketNumber = strings.TrimSpace(in.RocketNumber)
}

func (in *donationInput) apply(d *models.DonationInfo) {
	d.BankName = in.BankName
	d.BankAccountName = in.BankAccountName
	d.BankAccountNumber = in.BankAccountNumber
	d.BankBranch = in.BankBranch
	d.BankRoutingNumber = in.BankRoutingNumber
	d.BkashNumber = in.BkashNumber
	d.NagadNumber = in.NagadNumber
	d.RocketNumber = in.RocketNumber
	d.OtherPaymentInfo = in.OtherPaymentInfo
	d.DonationNote = in.DonationNote
	d.IsActive = in.IsActive
}

// APIDonationGet returns the donation row whether or not it is active.
func (a *Admin) APIDonationGet(w http.ResponseWriter, r *http.Request) {
	d, err := a.stores.Donation.Load(r.Context())
	respond(w, r, http.StatusOK, d, err)
}

func newDonationInput(d *models.DonationInfo) *donationInput {
	return &donationInput{
		BankName:          d.BankName,
		BankAccountName:   d.BankAccountName,
		BankAccountNumber: d.BankAccountNumber,
		BankBranch:        d.BankBranch,
		BankRoutingNumber: d.BankRoutingNumber,
		BkashNumber:       d.BkashNumber,
		NagadNumber:       d.NagadNumber,
		RocketNumber:      d.RocketNumber,
		OtherPaymentInfo:  d.OtherPaymentInfo,
		DonationNote:      d.DonationNote,
		IsActive:          d.IsActive,
	}
}

// saveDonation updates or, on an empty table, creates the donation row.
func (a *Admin) saveDonation(ctx context.Context, in *donationInput) (saved *models.DonationInfo, created bool, err error) {
	current, err := a.stores.Donation.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		d := &models.DonationInfo{}
		in.apply(d)
		saved, err = a.stores.Donation.Create(ctx, d)
		return saved, true, err
	}
	if err != nil {
		return nil, false, err
	}

	in.apply(current)
	if err := a.stores.Donation.Update(ctx, current); err != nil {
		return nil, false, err
	}
	saved, err = a.stores.Donation.Load(ctx)
	return saved, false, err
}

func (a *Admin) APIDonationSave(w http.ResponseWriter, r *http.Request) {
	var in donationInput
	if err := bindJSON(w, r, &in); err != nil {
		writeAPIError(w, r, err)
		return
	}
	saved, created, err := a.saveDonation(r.Context(), &in)
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respond(w, r, status, saved, err)
}

// --- Contacts (read-only apart from the read flag) ---

func (a *Admin) APIContactsList(w http.ResponseWriter, r *http.Request) {
	list, err := a.stores.Contacts.List(r.Context(), 0)
	respond(w, r, http.StatusOK, list, err)
}

func (a *Admin) APIContactGet(w http.ResponseWriter, r *http.Request) {
	getByID(w, r, a.stores.Contacts.FindByID)
}

type readInput struct {
	IsRead *bool `json:"is_read"`
}

// APIContactRead sets the read flag; without a body it toggles it.
func (a *Admin) APIContactRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := urlID(r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}

	c, err := a.stores.Contacts.FindByID(ctx, id)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}

	read := !c.IsRead
	if r.ContentLength > 0 {
		var in readInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeAPIError(w, r, err)
			return
		}
		if in.IsRead != nil {
			read = *in.IsRead
		}
	}

	if err := a.stores.Contacts.SetRead(ctx, id, read); err != nil {
		writeAPIError(w, r, err)
		return
	}
	c.IsRead = read
	writeJSON(w, http.StatusOK, c)
}

func (a *Admin) APIContactDelete(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, a.stores.Contacts.Delete)
}
