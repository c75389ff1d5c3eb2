// Copyright (c) 2026 Amani Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions including
// URL slug generation with Unicode normalization support.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// slugRegex matches non-alphanumeric characters (except hyphens)
	slugRegex = regexp.MustCompile(`[^a-z0-9-]+`)
	// multipleHyphens matches multiple consecutive hyphens
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a string to a URL-friendly slug.
// It converts to lowercase, removes accents, replaces spaces with hyphens,
// and removes all non-alphanumeric characters except hyphens.
func Slugify(s string) string {
	// Normalize unicode characters (decompose accents)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)
	result = strings.ReplaceAll(result, " ", "-")
	result = slugRegex.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// refSeparator joins an item ID and its slug inside a public reference.
// Slugs only ever contain [a-z0-9-], so a tilde cannot appear in the slug
// and IDs containing hyphens (UUIDs) survive the round trip.
const refSeparator = "~"

// ItemRef builds a public URL path segment for a resource item: the item ID
// followed by a readable slug of its title, e.g. "66a1f~clean-water-wells".
// The slug part is cosmetic; only the ID is used to resolve the item.
func ItemRef(id, title string) string {
	slug := Slugify(title)
	if slug == "" {
		return id
	}
	return id + refSeparator + slug
}

// RefID extracts the item ID from a public URL path segment produced by
// ItemRef. Everything after the first tilde is the cosmetic slug. IDs are
// opaque backend values and pass through untouched.
func RefID(ref string) string {
	if i := strings.Index(ref, refSeparator); i > 0 {
		return ref[:i]
	}
	return ref
}
