// Package service implements the admin lifecycle operations for
// products and categories on top of the repository layer.  Services
// own the save-time policies (slug assignment, copy naming, required
// fields, best-effort asset deletion) and depend on narrow store
// interfaces so the policies can be tested without a database.
package service

import "fmt"

// ValidationError reports user-correctable input problems.  Handlers
// surface it as a 400 with the field name.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func missing(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "is required"}
}
