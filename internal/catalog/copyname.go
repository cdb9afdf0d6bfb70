package catalog

import (
	"fmt"
	"regexp"
)

// copySuffix matches a trailing " (Copy)" or " (Copy N)" so duplicating
// a duplicate does not stack suffixes ("X (Copy) (Copy)").
var copySuffix = regexp.MustCompile(` \(Copy( \d+)?\)$`)

// CopyBase strips any trailing copy suffixes from a product name.
func CopyBase(name string) string {
	for copySuffix.MatchString(name) {
		name = copySuffix.ReplaceAllString(name, "")
	}
	return name
}

// CopyName returns the n-th candidate name for a duplicated product.
// n <= 1 yields "<base> (Copy)"; higher values yield "<base> (Copy n)".
// Uniqueness is checked by the caller against exact product names.
func CopyName(base string, n int) string {
	if n <= 1 {
		return fmt.Sprintf("%s (Copy)", base)
	}
	return fmt.Sprintf("%s (Copy %d)", base, n)
}
