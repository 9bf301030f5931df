// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package query

// Page is one slice of a paginated listing together with the numbers the
// client needs to render its pager.
type Page[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// Paginate returns page number page (1-indexed) of items. Pages below 1 or
// past the last page come back with an empty, non-nil Data slice.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage < 1 {
		perPage = 1
	}

	total := len(items)
	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}

	p := Page[T]{
		Data:        make([]T, 0),
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
	}
	if page < 1 || page > lastPage {
		return p
	}

	start := (page - 1) * perPage
	end := min(start+perPage, total)
	p.Data = append(p.Data, items[start:end]...)
	return p
}

// MapPage projects every item of p with fn, keeping the pager numbers.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := Page[U]{
		Data:        make([]U, 0, len(p.Data)),
		CurrentPage: p.CurrentPage,
		LastPage:    p.LastPage,
		PerPage:     p.PerPage,
		Total:       p.Total,
	}
	for _, item := range p.Data {
		out.Data = append(out.Data, fn(item))
	}
	return out
}
