// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package listing

import "strconv"

// Page sizes used by the public site.
const (
	EventPageSize = 6
	AlbumPageSize = 12
	PhotoPageSize = 20
)

// Page is one page of a paginated list.
type Page[T any] struct {
	Items      []T
	Number     int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
}

// ParsePage reads a 1-based page number; anything unparsable is page 1.
func ParsePage(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// TotalPages returns the page count for total items, at least 1.
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Clamp bounds a requested page number to [1, total pages].
func Clamp(page, total, size int) int {
	last := TotalPages(total, size)
	switch {
	case page < 1:
		return 1
	case page > last:
		return last
	default:
		return page
	}
}

// Paginate returns page number page of items. Out-of-range pages are
// clamped to the first or last page.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = len(items)
	}
	page = Clamp(page, len(items), size)

	start := (page - 1) * size
	end := min(start+size, len(items))
	if start > end {
		start = end
	}

	return NewPage(items[start:end], page, len(items), size)
}

// NewPage describes an already-sliced page given the total item count.
// Store-backed listings use it after fetching one page with LIMIT/OFFSET.
func NewPage[T any](items []T, page, total, size int) Page[T] {
	last := TotalPages(total, size)
	p := Page[T]{
		Items:      items,
		Number:     page,
		TotalPages: last,
		HasPrev:    page > 1,
		HasNext:    page < last,
	}
	if p.HasPrev {
		p.PrevPage = page - 1
	}
	if p.HasNext {
		p.NextPage = page + 1
	}
	return p
}

// Offset returns the LIMIT/OFFSET offset for a 1-based page.
func Offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}
