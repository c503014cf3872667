// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package listing

import (
	"cmp"
	"slices"

	"durgamondir/internal/models"
)

// MemberGroup is one category bucket of a directory page.
type MemberGroup struct {
	Category string
	Members  []models.Member
}

// SortMembers returns the active members ordered by category order,
// member order, then name.
func SortMembers(members []models.Member) []models.Member {
	out := make([]models.Member, 0, len(members))
	for _, m := range members {
		if m.IsActive {
			out = append(out, m)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Member) int {
		return cmp.Or(
			cmp.Compare(a.CategoryOrder, b.CategoryOrder),
			cmp.Compare(a.Order, b.Order),
			cmp.Compare(a.Name, b.Name),
		)
	})
	return out
}

// GroupMembers buckets active members by category label. Buckets appear in
// the order their label is first met after sorting; members keep their
// sorted order inside each bucket. Grouping is by label only, so two labels
// sharing a category order produce two buckets, and a label never yields
// more than one bucket.
func GroupMembers(members []models.Member) []MemberGroup {
	var groups []MemberGroup
	index := make(map[string]int)

	for _, m := range SortMembers(members) {
		i, ok := index[m.Category]
		if !ok {
			i = len(groups)
			index[m.Category] = i
			groups = append(groups, MemberGroup{Category: m.Category})
		}
		groups[i].Members = append(groups[i].Members, m)
	}

	return groups
}

// CategoryOrderConflicts returns, in sorted order, the category labels
// whose members disagree on category order. Such labels are displayed at
// the position of their first member only.
func CategoryOrderConflicts(members []models.Member) []string {
	seen := make(map[string]int)
	conflict := make(map[string]bool)

	for _, m := range members {
		if !m.IsActive {
			continue
		}
		if order, ok := seen[m.Category]; ok && order != m.CategoryOrder {
			conflict[m.Category] = true
			continue
		}
		seen[m.Category] = m.CategoryOrder
	}

	labels := make([]string, 0, len(conflict))
	for label := range conflict {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	return labels
}
