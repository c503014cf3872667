// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown converts page, event and puja-day bodies from Markdown
// into sanitized HTML using goldmark and bluemonday.
package markdown

import (
	"bytes"
	"html/template"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
		highlighting.NewHighlighting(
			highlighting.WithStyle("monokai"),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		// Staff paste raw HTML (map embeds, tables) into page bodies.
		html.WithUnsafe(),
	),
)

// embedSource limits iframes to video and map embeds.
var embedSource = regexp.MustCompile(`^https://(www\.)?(youtube\.com/embed/|youtube-nocookie\.com/embed/|google\.com/maps/embed)`)

// policy strips scripts and event handlers from the rendered HTML while
// keeping the markup editors use, including YouTube and Google Maps iframes.
var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("style").OnElements("span", "pre", "code")
	p.AllowElements("iframe")
	p.AllowAttrs("src").Matching(embedSource).OnElements("iframe")
	p.AllowAttrs("width", "height", "frameborder", "allowfullscreen", "loading", "referrerpolicy").OnElements("iframe")
	p.AllowURLSchemes("https")
	return p
}

// strict removes all markup; used for plain-text fields.
var strict = bluemonday.StrictPolicy()

// ToHTML converts Markdown source into sanitized HTML.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return policy.Sanitize(buf.String()), nil
}

// Render is the template helper form of ToHTML. Conversion errors render
// the escaped source instead.
func Render(source string) template.HTML {
	out, err := ToHTML(source)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(out)
}

// StripTags removes every HTML tag from s.
func StripTags(s string) string {
	return strict.Sanitize(s)
}
