package model

import "time"

// Category represents a top-level catalog category.  Categories group
// products on the public catalog page and carry an explicit sort order
// so the storefront can present them in a curated sequence.  Deleting a
// category cascades over the products that reference it; that cascade is
// performed in the repository layer inside a single transaction.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique human-friendly name.
//  SortOrder – position within catalog listings (lower comes first).
//  Active    – whether the category is shown on the public surface.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Category struct {
	ID        uint64    // categories.id
	Name      string    // categories.name
	SortOrder int       // categories.sort_order
	Active    bool      // categories.active
	CreatedAt time.Time // categories.created_at
	UpdatedAt time.Time // categories.updated_at
}
