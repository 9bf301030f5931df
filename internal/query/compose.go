// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package query

import (
	"cmp"
	"slices"
	"strings"

	"blogpress/internal/models"
)

// Entry is a post together with the metadata the listing needs. The
// comment count is computed from the live comment collection by the
// caller; it is never read from the post itself.
type Entry struct {
	Post          models.Post
	CommentsCount int
}

// Compose applies search, then the category restriction, then ordering.
// The input slice is not modified. Both orderings are stable, so entries
// that tie keep their input order.
func Compose(entries []Entry, f Filters) []Entry {
	out := make([]Entry, 0, len(entries))

	needle := strings.ToLower(strings.TrimSpace(f.Search))
	categoryID, restrict := f.CategoryID()

	for _, e := range entries {
		if needle != "" && !strings.Contains(strings.ToLower(e.Post.Title), needle) {
			continue
		}
		if restrict && e.Post.CategoryID != categoryID {
			continue
		}
		out = append(out, e)
	}

	switch ParseSort(string(f.Sort)) {
	case SortMostCommented:
		slices.SortStableFunc(out, func(a, b Entry) int {
			return cmp.Compare(b.CommentsCount, a.CommentsCount)
		})
	default:
		slices.SortStableFunc(out, func(a, b Entry) int {
			return b.Post.CreatedAt.Compare(a.Post.CreatedAt)
		})
	}

	return out
}
