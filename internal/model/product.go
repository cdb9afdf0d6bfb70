package model

import "time"

// Product is a catalog item.  Every product carries a globally unique,
// URL-safe slug derived from its name, up to three ordered image slots
// holding stored asset URLs, and a legacy ImageFilename fallback that
// points into the static assets tree.  CategoryID is a nullable
// reference to the owning Category; CategoryLabel is a free-text
// subcategory label kept for display only and never reconciled against
// the relational subcategory tree.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – display name; required.
//  Slug           – unique URL identifier, recomputed on save when
//                   empty, invalid or the name changed.
//  Description    – long-form description.
//  CategoryID     – owning category id; zero means unset (NULL).
//  CategoryLabel  – legacy free-text subcategory label.
//  Tag            – short marketing tag.
//  Image1..Image3 – stored asset URLs for the ordered image slots.
//  ImageFilename  – legacy filename under the static images root.
//  Dimensions     – e.g. "30x30x2cm".
//  Color          – e.g. "natural gray concrete".
//  SaleUnit       – e.g. "sold per m²".
//  Specifications – free text, one item per line.
//  Active         – whether the product is publicly visible.
//  SortOrder      – position within listings.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Product struct {
	ID             uint64    // products.id
	Name           string    // products.name
	Slug           string    // products.slug
	Description    string    // products.description
	CategoryID     uint64    // products.category_id (0 = NULL)
	CategoryLabel  string    // products.category_label
	Tag            string    // products.tag
	Image1         string    // products.image_1
	Image2         string    // products.image_2
	Image3         string    // products.image_3
	ImageFilename  string    // products.image_filename
	Dimensions     string    // products.dimensions
	Color          string    // products.color
	SaleUnit       string    // products.sale_unit
	Specifications string    // products.specifications
	Active         bool      // products.active
	SortOrder      int       // products.sort_order
	CreatedAt      time.Time // products.created_at
	UpdatedAt      time.Time // products.updated_at
}

// DefaultTag is applied when a product is created without a tag.
const DefaultTag = "Base Cementícia"
