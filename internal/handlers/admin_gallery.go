// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"durgamondir/internal/imaging"
	"durgamondir/internal/models"
	"durgamondir/internal/storage"
)

const (
	// maxImageUpload caps gallery and slider uploads.
	maxImageUpload = 20 << 20

	defaultAPILimit = 50
	maxAPILimit     = 200

	photoFolder = "gallery/photos"
	slideFolder = "slides"
)

// listWindow reads limit/offset query parameters for paged admin lists.
func listWindow(r *http.Request) (limit, offset int) {
	limit = defaultAPILimit
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 {
		limit = min(n, maxAPILimit)
	}
	if n, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && n > 0 {
		offset = n
	}
	return limit, offset
}

// readUpload parses a multipart form and returns the bytes of its "image"
// field. A missing field yields nil data and no error.
func readUpload(w http.ResponseWriter, r *http.Request) (data []byte, name string, err error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageUpload+1<<20)
	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		return nil, "", &badRequest{msg: "invalid multipart form or file too large"}
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", &badRequest{msg: "cannot read uploaded file"}
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		return nil, "", &badRequest{msg: "cannot read uploaded file"}
	}
	return data, header.Filename, nil
}

func formBool(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(r.FormValue(key))
	return v
}

func formInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.FormValue(key))
	return n
}

// --- Albums ---

type albumInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	CoverImage  string `json:"cover_image" validate:"max=500"`
	IsFeatured  bool   `json:"is_featured"`
}

func (in *albumInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
}

func (in *albumInput) apply(a *models.Album) {
	a.Title = in.Title
	a.Description = in.Description
	a.CoverImage = in.CoverImage
	a.IsFeatured = in.IsFeatured
}

func (a *Admin) APIAlbumsList(w http.ResponseWriter, r *http.Request) {
	limit, offset := listWindow(r)
	albums, err := a.stores.Albums.List(r.Context(), limit, offset)
	respond(w, r, http.StatusOK, albums, err)
}

func (a *Admin) APIAlbumGet(w http.ResponseWriter, r *http.Request) {
	getByID(w, r, a.stores.Albums.FindByID)
}

func (a *Admin) APIAlbumCreate(w http.ResponseWriter, r *http.Request) {
	var in albumInput
	if err := bindJSON(w, r, &in); err != nil {
		writeAPIError(w, r, err)
		return
	}
	album := &models.Album{}
	in.apply(album)
	created, err := a.stores.Albums.Create(r.Context(), album)
	respond(w, r, http.StatusCreated, created, err)
}

func (a *Admin) APIAlbumUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := urlID(r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	var in albumInput
	if err := bindJSON(w, r, &in); err != nil {
		writeAPIError(w, r, err)
		return
	}
	album, err := a.stores.Albums.FindByID(ctx, id)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	in.apply(album)
	respond(w, r, http.StatusOK, album, a.stores.Albums.Update(ctx, album))
}

// APIAlbumDelete removes the album; its photo rows go with it through the
// foreign key cascade. Stored photo files are removed first.
func (a *Admin) APIAlbumDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := urlID(r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	if _, err := a.stores.Albums.FindByID(ctx, id); err != nil {
		writeAPIError(w, r, err)
		return
	}

	for offset := 0; ; offset += maxAPILimit {
		photos, err := a.stores.Photos.ListByAlbum(ctx, id, maxAPILimit, offset)
		if err != nil {
			writeAPIError(w, r, err)
			return
		}
		for _, p := range photos {
			a.removePhotoFiles(ctx, &p)
		}
		if len(photos) < maxAPILimit {
			break
		}
	}

	if err := a.stores.Albums.Delete(ctx, id); err != nil {
		writeAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Photos ---

func (a *Admin) APIPhotosList(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	limit, offset := listWindow(r)
	photos, err := a.stores.Photos.ListByAlbum(r.Context(), id, limit, offset)
	respond(w, r, http.StatusOK, photos, err)
}

// APIPhotoUpload stores an uploaded photo and its thumbnail under a fresh
// key and records it in the album named by the route.
func (a *Admin) APIPhotoUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	albumID, err := urlID(r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}

	data, name, err := readUpload(w, r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	if data == nil {
		writeAPIError(w, r, fieldError("image", "একটি ছবি নির্বাচন করুন।"))
		return
	}

	in := struct {
		Title       string `json:"title" validate:"max=200"`
		Description string `json:"description" validate:"max=5000"`
	}{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: r.FormValue("description"),
	}
	if err := validateStruct(&in); err != nil {
		writeAPIError(w, r, err)
		return
	}

	// Thumbnail decodes the image, so bad uploads are rejected before
	// anything is written.
	thumb, err := imaging.Thumbnail(data, imaging.ThumbWidth)
	if err != nil && !errors.Is(err, imaging.ErrNoThumbnail) {
		writeAPIError(w, r, err)
		return
	}

	contentType := http.DetectContentType(data)
	key := storage.NewKey(photoFolder, imageExtension(name, contentType), a.clock.Now())
	if err := a.media.Put(ctx, key, contentType, data); err != nil {
		writeAPIError(w, r, fmt.Errorf("store photo: %w", err))
		return
	}

	photo := &models.Photo{
		AlbumID:     albumID,
		Title:       in.Title,
		Image:       key,
		Description: in.Description,
	}
	if thumb != nil {
		tk := storage.ThumbKey(key)
		if err := a.media.Put(ctx, tk, "image/jpeg", thumb); err != nil {
			slog.Warn("photo thumbnail upload failed", "error", err, "key", tk)
		} else {
			photo.Thumb = &tk
		}
	}

	created, err := a.stores.Photos.Create(ctx, photo)
	if err != nil {
		a.removePhotoFiles(ctx, photo)
		writeAPIError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type photoInput struct {
	Title       string `json:"title" validate:"max=200"`
	Description string `json:"description" validate:"max=5000"`
}

func (in *photoInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
}

func (a *Admin) APIPhotoUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := urlID(r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	var in photoInput
	if err := bindJSON(w, r, &in); err != nil {
		writeAPIError(w, r, err)
		return
	}
	photo, err := a.stores.Photos.FindByID(ctx, id)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	photo.Title = in.Title
	photo.Description = in.Description
	respond(w, r, http.StatusOK, photo, a.stores.Photos.Update(ctx, photo))
}

func (a *Admin) APIPhotoDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := urlID(r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	photo, err := a.stores.Photos.FindByID(ctx, id)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	if err := a.stores.Photos.Delete(ctx, id); err != nil {
		writeAPIError(w, r, err)
		return
	}
	a.removePhotoFiles(ctx, photo)
	w.WriteHeader(http.StatusNoContent)
}

// removePhotoFiles deletes the stored original and thumbnail. Failures are
// logged only; an orphaned object is harmless.
func (a *Admin) removePhotoFiles(ctx context.Context, p *models.Photo) {
	keys := []string{p.Image}
	if p.Thumb != nil {
		keys = append(keys, *p.Thumb)
	}
	for _, key := range keys {
		if err := a.media.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("photo file delete failed", "error", err, "key", key)
		}
	}
}

// --- Gallery items ---

type galleryInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Kind        string `json:"gallery_type" validate:"required,oneof=photo video"`
	Image       string `json:"image" validate:"max=500"`
	VideoURL    string `json:"video_url" validate:"required_if=Kind video,max=500"`
	IsFeatured  bool   `json:"is_featured"`
}

func (in *galleryInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.VideoURL = strings.TrimSpace(in.VideoURL)
	if in.Kind == "" {
		in.Kind = string(models.GalleryPhoto)
	}
}

func (in *galleryInput) apply(g *models.GalleryItem) {
	g.Title = in.Title
	g.Description = in.Description
	g.Kind = models.GalleryKind(in.Kind)
	g.Image = in.Image
	g.VideoURL = in.VideoURL
	g.IsFeatured = in.IsFeatured
}

func (a *Admin) APIGalleryList(w http.ResponseWriter, r *http.Request) {
	items, err := a.stores.Gallery.List(r.Context())
	respond(w, r, http.StatusOK, items, err)
}

func (a *Admin) APIGalleryGet(w http.ResponseWriter, r *http.Request) {
	getByID(w, r, a.stores.Gallery.FindByID)
}

func (a *Admin) APIGalleryCreate(w http.ResponseWriter, r *http.Request) {
	var in galleryInput
	if err := bindJSON(w, r, &in); err != nil {
		writeAPIError(w, r, err)
		return
	}
	g := &models.GalleryItem{}
	in.apply(g)
	created, err := a.stores.Gallery.Create(r.Context(), g)
	respond(w, r, http.StatusCreated, created, err)
}

func (a *Admin) APIGalleryUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := urlID(r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	var in galleryInput
	if err := bindJSON(w, r, &in); err != nil {
		writeAPIError(w, r, err)
		return
	}
	g, err := a.stores.Gallery.FindByID(ctx, id)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	in.apply(g)
	respond(w, r, http.StatusOK, g, a.stores.Gallery.Update(ctx, g))
}

func (a *Admin) APIGalleryDelete(w http.ResponseWriter, r *http.Request) {
	deleteByID(w, r, a.stores.Gallery.Delete)
}

// --- Sliders ---

// slideForm is read from multipart form fields since slides carry an image.
type slideForm struct {
	Title       string `json:"title" validate:"required,max=200"`
	Subtitle    string `json:"subtitle" validate:"max=300"`
	Description string `json:"description" validate:"max=5000"`
	ButtonText  string `json:"button_text" validate:"max=50"`
	ButtonLink  string `json:"button_link" validate:"max=500"`
	IsActive    bool   `json:"is_active"`
	Order       int    `json:"order" validate:"gte=0"`
}

func parseSlideForm(r *http.Request) (*slideForm, error) {
	f := &slideForm{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Subtitle:    strings.TrimSpace(r.FormValue("subtitle")),
		Description: r.FormValue("description"),
		ButtonText:  strings.TrimSpace(r.FormValue("button_text")),
		ButtonLink:  strings.TrimSpace(r.FormValue("button_link")),
		IsActive:    formBool(r, "is_active"),
		Order:       formInt(r, "order"),
	}
	if err := validateStruct(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *slideForm) apply(s *models.Slide) {
	s.Title = f.Title
	s.Subtitle = f.Subtitle
	s.Description = f.Description
	s.ButtonText = f.ButtonText
	s.ButtonLink = f.ButtonLink
	s.IsActive = f.IsActive
	s.Order = f.Order
}

func (a *Admin) APISlidesList(w http.ResponseWriter, r *http.Request) {
	slides, err := a.stores.Slides.List(r.Context())
	respond(w, r, http.StatusOK, slides, err)
}

func (a *Admin) APISlideGet(w http.ResponseWriter, r *http.Request) {
	getByID(w, r, a.stores.Slides.FindByID)
}

// APISlideCreate requires an image; it is normalized to the slider size
// before the record is written.
func (a *Admin) APISlideCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data, _, err := readUpload(w, r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	form, err := parseSlideForm(r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	if data == nil {
		writeAPIError(w, r, fieldError("image", "একটি ছবি নির্বাচন করুন।"))
		return
	}

	slide := &models.Slide{Image: storage.NewKey(slideFolder, ".jpg", a.clock.Now())}
	form.apply(slide)
	if err := a.saveSlideImage(ctx, slide.Image, data); err != nil {
		writeAPIError(w, r, err)
		return
	}

	created, err := a.stores.Slides.Create(ctx, slide)
	if err != nil {
		if derr := a.media.Delete(ctx, slide.Image); derr != nil {
			slog.Warn("slide image cleanup failed", "error", derr, "key", slide.Image)
		}
		writeAPIError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// APISlideUpdate saves the slide fields. A new upload replaces the image;
// without one, the stored image is normalized again in place.
func (a *Admin) APISlideUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := urlID(r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	data, _, err := readUpload(w, r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	form, err := parseSlideForm(r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}

	slide, err := a.stores.Slides.FindByID(ctx, id)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	if slide.Image == "" {
		slide.Image = storage.NewKey(slideFolder, ".jpg", a.clock.Now())
	}

	if data == nil {
		data, err = a.media.Get(ctx, slide.Image)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			writeAPIError(w, r, fmt.Errorf("load slide image: %w", err))
			return
		}
	}
	if data != nil {
		if err := a.saveSlideImage(ctx, slide.Image, data); err != nil {
			writeAPIError(w, r, err)
			return
		}
	}

	form.apply(slide)
	respond(w, r, http.StatusOK, slide, a.stores.Slides.Update(ctx, slide))
}

// APISlideDelete removes the slide and its stored image.
func (a *Admin) APISlideDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := urlID(r)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	slide, err := a.stores.Slides.FindByID(ctx, id)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}
	if err := a.stores.Slides.Delete(ctx, id); err != nil {
		writeAPIError(w, r, err)
		return
	}
	if slide.Image != "" {
		if err := a.media.Delete(ctx, slide.Image); err != nil && !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("slide image delete failed", "error", err, "key", slide.Image)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// saveSlideImage normalizes src to the slider size and writes it to key,
// replacing whatever was stored there. An undecodable source leaves the
// stored object untouched.
func (a *Admin) saveSlideImage(ctx context.Context, key string, src []byte) error {
	out, err := imaging.NormalizeSlider(src)
	if err != nil {
		return err
	}
	if err := a.media.Put(ctx, key, "image/jpeg", out); err != nil {
		return fmt.Errorf("store slide image: %w", err)
	}
	return nil
}

// imageExtension picks the key extension from the upload name, falling
// back to the sniffed content type.
func imageExtension(name, contentType string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return ext
	}
	return extensionFromType(contentType)
}
