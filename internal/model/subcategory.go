package model

import "time"

// Subcategory is a child label under a Category.  The pair
// (CategoryID, Name) is unique.  Subcategories are owned by their
// parent category and are removed by the database when the parent
// row is deleted.
type Subcategory struct {
	ID         uint64    // subcategories.id
	CategoryID uint64    // subcategories.category_id
	Name       string    // subcategories.name
	SortOrder  int       // subcategories.sort_order
	Active     bool      // subcategories.active
	CreatedAt  time.Time // subcategories.created_at
	UpdatedAt  time.Time // subcategories.updated_at
}
