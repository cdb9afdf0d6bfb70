// Package catalog holds the pure catalog rules: slug assignment, copy
// naming and product image resolution.  Nothing in this package touches
// the database or the network, which keeps the rules independently
// testable; the service layer wires them to persistence.
package catalog

import (
	"fmt"
	"regexp"

	"github.com/gosimple/slug"
)

// slugPattern is the set of characters a stored slug may contain.  A slug
// outside this set (typically hand-typed in the admin form) is treated as
// invalid and regenerated on save.
var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// IsValidSlug reports whether s is non-empty and URL-safe.
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// NeedsSlug decides whether a product's slug must be (re)computed on
// save.  It is recomputed when the slug is empty, when it contains
// invalid characters, or when an already persisted product is being
// renamed (persistedName differs from name).  For new products
// persistedName must be passed as the empty string with exists=false.
func NeedsSlug(current, persistedName, name string, exists bool) bool {
	if !IsValidSlug(current) {
		return true
	}
	return exists && persistedName != name
}

// BaseSlug derives the slug root from a product name: lower-cased,
// accents transliterated, non-alphanumeric runs collapsed to single
// hyphens with edge hyphens trimmed.
func BaseSlug(name string) string {
	return slug.Make(name)
}

// CandidateSlug returns the n-th uniqueness candidate for a base slug.
// n = 0 is the bare base; n >= 1 appends "-n".
func CandidateSlug(base string, n int) string {
	if n <= 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
