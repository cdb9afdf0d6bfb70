// Package repository contains the data access layer.  Sentinel errors
// defined here let handlers and services distinguish failure scenarios
// without inspecting SQL driver errors themselves: not-found sentinels
// map to 404 responses, duplicate sentinels map to validation/conflict
// responses.
package repository

import (
	"errors"
	"strings"
)

// ErrCategoryNotFound is returned when a category id does not exist.
var ErrCategoryNotFound = errors.New("category not found")

// ErrSubcategoryNotFound is returned when a subcategory id does not exist.
var ErrSubcategoryNotFound = errors.New("subcategory not found")

// ErrProductNotFound is returned when a product id or slug does not exist.
var ErrProductNotFound = errors.New("product not found")

// ErrMessageNotFound is returned when a contact message id does not exist.
var ErrMessageNotFound = errors.New("contact message not found")

// ErrDuplicateName is returned when a unique name constraint is violated:
// a category name collision or a (category, subcategory) pair collision.
var ErrDuplicateName = errors.New("name already exists")

// ErrSlugTaken is returned when an insert or update hits the products
// slug unique constraint.  The service layer treats this as a signal to
// bump the slug disambiguator and retry; the constraint is the
// authoritative guard, the pre-insert existence check is an optimization.
var ErrSlugTaken = errors.New("slug already exists")

// ErrEmailExists is returned when a user email is already registered.
var ErrEmailExists = errors.New("email already exists")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (error number 1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// isDuplicateKeyFor reports whether err is a 1062 on the given key name.
func isDuplicateKeyFor(err error, key string) bool {
	return isDuplicateKey(err) && strings.Contains(err.Error(), key)
}
