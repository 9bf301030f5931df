// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from post titles.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength is the longest slug Generate returns, matching the posts.slug
// column. Folding can make a slug longer than its title ("ß" becomes "ss").
const MaxLength = 255

var (
	// separators matches every run of characters that cannot appear in a slug.
	separators = regexp.MustCompile(`[^a-z0-9]+`)

	// ligatures that do not decompose under NFD.
	ligatures = strings.NewReplacer(
		"ß", "ss", "æ", "ae", "œ", "oe", "ø", "o", "đ", "d", "ł", "l", "þ", "th",
	)
)

// Generate creates a URL-friendly slug from the given string. Accents are
// folded to their base letters, everything else that is not a letter or
// digit becomes a single hyphen, and leading/trailing hyphens are removed.
// The result is at most MaxLength characters.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := ligatures.Replace(strings.ToLower(s))
	result = fold(result)
	result = separators.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	// Only ASCII survives the separator pass, so bytes are runes here.
	if len(result) > MaxLength {
		result = strings.TrimRight(result[:MaxLength], "-")
	}
	return result
}

// fold strips combining marks after canonical decomposition, so "é"
// becomes "e".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
