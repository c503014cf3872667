package handlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"durgamondir/internal/imaging"
	"durgamondir/internal/listing"
	"durgamondir/internal/middleware"
	"durgamondir/internal/models"
	"durgamondir/internal/render"
	"durgamondir/internal/storage"
	"durgamondir/internal/store"
)

const (
	// maxUploadSize is the maximum allowed media upload size (50 MB).
	maxUploadSize = 50 << 20

	mediaPageSize = 30
	mediaFolder   = "media"
)

// allowedMediaTypes defines MIME types accepted for upload.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"image/svg+xml":   true,
	"application/pdf": true,
}

// thumbableTypes are image types that get a thumbnail. GIF keeps its
// animation and SVG is vector.
var thumbableTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// MediaLibrary renders one page of uploaded assets, newest first.
func (a *Admin) MediaLibrary(w http.ResponseWriter, r *http.Request) {
	a.renderMediaLibrary(w, r, http.StatusOK, "")
}

func (a *Admin) renderMediaLibrary(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	ctx := r.Context()

	kind := store.ParseMediaKind(r.URL.Query().Get("type"))

	total, err := a.stores.Media.CountKind(ctx, kind)
	if err != nil {
		slog.Error("count media failed", "error", err)
	}
	page := listing.Clamp(listing.ParsePage(r.URL.Query().Get("page")), total, mediaPageSize)

	items, err := a.stores.Media.List(ctx, kind, mediaPageSize, listing.Offset(page, mediaPageSize))
	if err != nil {
		slog.Error("list media failed", "error", err)
	}
	used, err := a.stores.Media.TotalBytes(ctx)
	if err != nil {
		slog.Error("sum media size failed", "error", err)
	}

	a.renderer.PageStatus(w, r, status, "media", &render.PageData{
		Title:   "Media Library",
		Section: "media",
		Data: map[string]any{
			"Media": items,
			"Kind":  string(kind),
			"Used":  (&models.Media{SizeBytes: used}).HumanSize(),
			"Pager": listing.NewPage(items, page, total, mediaPageSize),
			"Error": errMsg,
		},
	})
}

// mediaError reports an upload failure as JSON for scripts and as the
// re-rendered library page for the plain form.
func (a *Admin) mediaError(w http.ResponseWriter, r *http.Request, msg string, status int) {
	if isXHR(r) {
		writeJSON(w, status, map[string]string{"error": msg})
		return
	}
	a.renderMediaLibrary(w, r, status, msg)
}

// MediaUpload stores a file in the storage backend and records it in the
// media table. Images also get a bounded-width JPEG thumbnail.
func (a *Admin) MediaUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromCtx(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		a.mediaError(w, r, "ফাইলটি অনেক বড়। সর্বোচ্চ ৫০ MB।", http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		a.mediaError(w, r, "কোনো ফাইল দেওয়া হয়নি।", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		a.mediaError(w, r, "ফাইলটি পড়া যায়নি।", http.StatusInternalServerError)
		return
	}

	contentType := detectMediaType(header.Filename, data)
	if !allowedMediaTypes[contentType] {
		a.mediaError(w, r, fmt.Sprintf("%q ধরনের ফাইল অনুমোদিত নয়।", contentType), http.StatusBadRequest)
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == "" {
		ext = extensionFromType(contentType)
	}
	key := storage.NewKey(mediaFolder, ext, a.clock.Now())

	if err := a.media.Put(ctx, key, contentType, data); err != nil {
		slog.Error("media upload failed", "error", err, "key", key)
		a.mediaError(w, r, "ফাইলটি আপলোড করা যায়নি।", http.StatusInternalServerError)
		return
	}

	var thumbKey *string
	if thumbableTypes[contentType] {
		thumb, err := imaging.Thumbnail(data, imaging.ThumbWidth)
		switch {
		case errors.Is(err, imaging.ErrNoThumbnail):
		case err != nil:
			slog.Warn("thumbnail generation failed", "error", err, "key", key)
		default:
			tk := storage.ThumbKey(key)
			if err := a.media.Put(ctx, tk, "image/jpeg", thumb); err != nil {
				slog.Warn("thumbnail upload failed", "error", err, "key", tk)
			} else {
				thumbKey = &tk
			}
		}
	}

	created, err := a.stores.Media.Create(ctx, &models.Media{
		Key:          key,
		ThumbKey:     thumbKey,
		OriginalName: header.Filename,
		ContentType:  contentType,
		SizeBytes:    int64(len(data)),
		UploaderID:   sess.UserID,
	})
	if err != nil {
		slog.Error("media insert failed", "error", err, "key", key)
		a.removeMediaFiles(r, &models.Media{Key: key, ThumbKey: thumbKey})
		a.mediaError(w, r, "ফাইলের তথ্য সংরক্ষণ করা যায়নি।", http.StatusInternalServerError)
		return
	}

	if !isXHR(r) {
		http.Redirect(w, r, "/admin/media", http.StatusSeeOther)
		return
	}

	var thumbURL string
	if created.ThumbKey != nil {
		thumbURL = a.media.URL(*created.ThumbKey)
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":        created.ID,
		"key":       created.Key,
		"url":       a.media.URL(created.Key),
		"thumb_url": thumbURL,
		"filename":  created.OriginalName,
		"size":      created.HumanSize(),
		"type":      created.ContentType,
	})
}

// MediaDelete removes a media record and then its stored objects.
func (a *Admin) MediaDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	deleted, err := a.stores.Media.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("media delete failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.removeMediaFiles(r, deleted)

	if isXHR(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/admin/media", http.StatusSeeOther)
}

// removeMediaFiles deletes stored objects on a best-effort basis.
func (a *Admin) removeMediaFiles(r *http.Request, m *models.Media) {
	keys := []string{m.Key}
	if m.ThumbKey != nil {
		keys = append(keys, *m.ThumbKey)
	}
	for _, key := range keys {
		if err := a.media.Delete(r.Context(), key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("media object delete failed", "error", err, "key", key)
		}
	}
}

// detectMediaType sniffs the content type. SVG files sniff as XML or text
// and are recognised by their extension.
func detectMediaType(filename string, data []byte) string {
	contentType := http.DetectContentType(data)
	if strings.HasSuffix(strings.ToLower(filename), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")) {
		return "image/svg+xml"
	}
	return contentType
}

// extensionFromType returns a file extension for known MIME types.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	case "application/pdf":
		return ".pdf"
	default:
		return ""
	}
}
