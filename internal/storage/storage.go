// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage keeps uploaded images (slides, photos, member portraits,
// page images) behind a small Backend interface. Records in PostgreSQL hold
// only the storage key; the backend turns a key into a public URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Get when no object exists under the key.
var ErrNotFound = errors.New("storage: object not found")

// ErrInvalidKey rejects keys that are empty, absolute or escape the root.
var ErrInvalidKey = errors.New("storage: invalid key")

// Backend is implemented by the S3 client and the local disk store.
type Backend interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// NewKey builds a fresh object key of the form
// "<folder>/<yyyy>/<mm>/<uuid><ext>".
func NewKey(folder, ext string, now time.Time) string {
	return fmt.Sprintf("%s/%d/%02d/%s%s", folder, now.Year(), int(now.Month()), uuid.New().String(), ext)
}

// ThumbKey derives the thumbnail key stored next to an original.
func ThumbKey(key string) string {
	ext := path.Ext(key)
	return strings.TrimSuffix(key, ext) + "_thumb.jpg"
}

func cleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
