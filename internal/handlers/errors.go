// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"durgamondir/internal/imaging"
	"durgamondir/internal/store"
)

// maxJSONBody caps JSON request bodies for the admin API.
const maxJSONBody = 1 << 20

// badRequest is a client error whose message is safe to return.
type badRequest struct {
	msg string
}

func (e *badRequest) Error() string { return e.msg }

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode json response failed", "error", err)
	}
}

// writeAPIError maps an error to a status code and a JSON body. Unknown
// errors are logged and reported as a generic 500.
func writeAPIError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr *validationError
		breq *badRequest
	)

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": "validation failed", "fields": verr.Fields})
	case errors.As(err, &breq):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": breq.msg})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, imaging.ErrDecode):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "the uploaded file is not a supported image"})
	case errors.Is(err, store.ErrSlugTaken):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "slug is already in use"})
	case errors.Is(err, store.ErrSingletonExists):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "only one record of this kind may exist"})
	case errors.Is(err, store.ErrParentCycle):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "a page cannot be its own ancestor"})
	case errors.Is(err, store.ErrInvalidReference):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "referenced record does not exist"})
	default:
		slog.Error("admin api request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

// decodeJSON reads a JSON request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &badRequest{msg: fmt.Sprintf("invalid JSON body: %v", err)}
	}
	return nil
}

// urlID parses the {id} route parameter.
func urlID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, &badRequest{msg: "invalid id"}
	}
	return id, nil
}

// isXHR reports whether the request came from the page scripts.
func isXHR(r *http.Request) bool {
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}
