// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging normalizes uploaded images. Slider images are
// centre-cropped to a fixed aspect ratio and resampled to an exact size;
// gallery photos get a bounded-width thumbnail.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	// SliderWidth and SliderHeight are the fixed slider output dimensions.
	SliderWidth  = 1920
	SliderHeight = 1080

	// Quality is the JPEG quality for normalized images.
	Quality = 85

	// maxImagePixels caps decoded size to prevent memory bombs.
	maxImagePixels = 100_000_000
)

// ErrDecode is matched by every DecodeError.
var ErrDecode = errors.New("imaging: cannot decode image")

// DecodeError reports an unreadable or oversized source image.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("imaging: decode: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDecode) true for any DecodeError.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// CropRect returns the centred crop of a w x h image that has the aspect
// ratio width:height. Wider images lose columns, taller images lose rows.
// The crop is never narrower or shorter than one pixel.
func CropRect(w, h, width, height int) image.Rectangle {
	target := float64(width) / float64(height)
	ratio := float64(w) / float64(h)

	if ratio > target {
		newW := min(w, max(1, int(float64(h)*target)))
		left := (w - newW) / 2
		return image.Rect(left, 0, left+newW, h)
	}

	newH := min(h, max(1, int(float64(w)/target)))
	top := (h - newH) / 2
	return image.Rect(0, top, w, top+newH)
}

// Normalize decodes src, centre-crops it to the width:height aspect ratio,
// resamples it to exactly width x height with a Lanczos filter and encodes
// the result as JPEG at Quality.
func Normalize(src []byte, width, height int) ([]byte, error) {
	img, err := decode(src)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	crop := CropRect(b.Dx(), b.Dy(), width, height).Add(b.Min)
	out := imaging.Resize(imaging.Crop(img, crop), width, height, imaging.Lanczos)
	if got := out.Bounds(); got.Dx() != width || got.Dy() != height {
		return nil, &DecodeError{Err: fmt.Errorf("resample produced %dx%d, want %dx%d", got.Dx(), got.Dy(), width, height)}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.JPEG, imaging.JPEGQuality(Quality)); err != nil {
		return nil, fmt.Errorf("imaging: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// NormalizeSlider normalizes src to the slider dimensions.
func NormalizeSlider(src []byte) ([]byte, error) {
	return Normalize(src, SliderWidth, SliderHeight)
}

// decode checks dimensions before fully decoding the image.
func decode(src []byte) (image.Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, &DecodeError{Err: errors.New("empty image")}
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxImagePixels {
		return nil, &DecodeError{Err: fmt.Errorf("image too large: %dx%d", cfg.Width, cfg.Height)}
	}

	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return img, nil
}
