// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package youtube turns YouTube watch, short and embed links into the
// canonical embeddable player URL.
package youtube

import "regexp"

const embedBase = "https://www.youtube.com/embed/"

var videoID = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`)

// ID extracts the video identifier from a YouTube URL.
func ID(raw string) (string, bool) {
	m := videoID.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// EmbedURL returns the embeddable URL for a YouTube link. Anything that
// does not look like a YouTube video link is returned unchanged.
func EmbedURL(raw string) string {
	id, ok := ID(raw)
	if !ok {
		return raw
	}
	return embedBase + id
}
