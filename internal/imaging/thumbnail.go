// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"

	"golang.org/x/image/draw"
)

const (
	// ThumbWidth is the maximum thumbnail width in pixels.
	ThumbWidth = 400

	thumbQuality = 80
)

// ErrNoThumbnail is returned by Thumbnail when the source is already no
// wider than the requested width; the original serves as its own preview.
var ErrNoThumbnail = errors.New("imaging: image needs no thumbnail")

// Thumbnail creates a JPEG thumbnail no wider than maxWidth, preserving the
// aspect ratio.
func Thumbnail(src []byte, maxWidth int) ([]byte, error) {
	img, err := decode(src)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxWidth {
		return nil, ErrNoThumbnail
	}

	ratio := float64(maxWidth) / float64(bounds.Dx())
	newHeight := max(1, int(float64(bounds.Dy())*ratio))

	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
