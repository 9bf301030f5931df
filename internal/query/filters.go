// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package query composes the post listing: search, category restriction,
// ordering and pagination over an in-memory post collection. Nothing in
// this package performs I/O.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// SortMode selects the ordering of a listing.
type SortMode string

const (
	SortLatest        SortMode = "latest"
	SortMostCommented SortMode = "most_commented"
)

// AllCategories is the category filter value that disables the restriction.
const AllCategories = "all"

// Page sizes for the two listings.
const (
	PublicPageSize = 9
	AdminPageSize  = 10
)

// Filters is the typed form of the listing query string. The zero value
// lists every post, newest first, on page 1 once passed through
// ParseFilters; use ParseFilters or fill the fields explicitly.
type Filters struct {
	// Search matches case-insensitively against post titles. Empty means
	// every post passes.
	Search string

	// Category is the raw category filter. Empty or AllCategories means no
	// restriction. See CategoryID for how the value is interpreted.
	Category string

	// Sort defaults to SortLatest. Unknown values behave as SortLatest.
	Sort SortMode

	// Page is 1-indexed. Values below 1 select an empty page.
	Page int
}

// ParseFilters reads the search, category, sort and page parameters.
// It never fails: malformed values fall back to their defaults.
func ParseFilters(v url.Values) Filters {
	f := Filters{
		Search:   strings.TrimSpace(v.Get("search")),
		Category: strings.TrimSpace(v.Get("category")),
		Sort:     ParseSort(v.Get("sort")),
		Page:     1,
	}
	if f.Category == "" {
		f.Category = AllCategories
	}
	if p, err := strconv.Atoi(strings.TrimSpace(v.Get("page"))); err == nil {
		f.Page = p
	}
	return f
}

// ParseSort maps a raw sort value to a SortMode.
func ParseSort(raw string) SortMode {
	if SortMode(strings.TrimSpace(raw)) == SortMostCommented {
		return SortMostCommented
	}
	return SortLatest
}

// CategoryID returns the category to restrict the listing to. The second
// result is false when the listing is unrestricted: the filter is empty,
// AllCategories, or not an integer.
func (f Filters) CategoryID() (int64, bool) {
	raw := strings.TrimSpace(f.Category)
	if raw == "" || raw == AllCategories {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Echo is the effective filter set sent back to the client so it can
// restore its controls.
type Echo struct {
	Search   string   `json:"search"`
	Category string   `json:"category"`
	Sort     SortMode `json:"sort"`
}

// Echo returns the filters with defaults applied.
func (f Filters) Echo() Echo {
	e := Echo{Search: f.Search, Category: f.Category, Sort: f.Sort}
	if e.Category == "" {
		e.Category = AllCategories
	}
	if e.Sort != SortMostCommented {
		e.Sort = SortLatest
	}
	return e
}
