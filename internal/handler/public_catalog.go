package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/estudiocobogo/catalogo-api/internal/catalog"
	"github.com/estudiocobogo/catalogo-api/internal/model"
	"github.com/estudiocobogo/catalogo-api/internal/repository"
)

// otherProductsLimit caps the "more products" strip on the detail page.
const otherProductsLimit = 8

// PublicHandler serves the unauthenticated catalog endpoints.  Only
// active records are ever returned here; drafts and hidden categories
// are an admin-side concern.
type PublicHandler struct {
	Products      *repository.ProductRepo
	Categories    *repository.CategoryRepo
	Subcategories *repository.SubcategoryRepo
}

func NewPublicHandler(p *repository.ProductRepo, c *repository.CategoryRepo, s *repository.SubcategoryRepo) *PublicHandler {
	return &PublicHandler{Products: p, Categories: c, Subcategories: s}
}

// ----- DTOs -----

type subcategoryPart struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

type categoryPart struct {
	ID            uint64            `json:"id"`
	Name          string            `json:"name"`
	SortOrder     int               `json:"sort_order"`
	Subcategories []subcategoryPart `json:"subcategories"`
}

type productCard struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Tag           string `json:"tag"`
	Image         string `json:"image"`
	CategoryLabel string `json:"category_label,omitempty"`
	Dimensions    string `json:"dimensions,omitempty"`
}

type productGroup struct {
	Category *categoryPart `json:"category"` // nil for uncategorized products
	Products []productCard `json:"products"`
}

type productDetail struct {
	ID             uint64   `json:"id"`
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	Description    string   `json:"description"`
	Tag            string   `json:"tag"`
	CategoryID     uint64   `json:"category_id,omitempty"`
	CategoryLabel  string   `json:"category_label,omitempty"`
	Image          string   `json:"image"`
	Gallery        []string `json:"gallery"`
	Dimensions     string   `json:"dimensions,omitempty"`
	Color          string   `json:"color,omitempty"`
	SaleUnit       string   `json:"sale_unit,omitempty"`
	Specifications string   `json:"specifications,omitempty"`
}

func toCard(p *model.Product) productCard {
	return productCard{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Tag:           p.Tag,
		Image:         catalog.DisplayImageURL(p),
		CategoryLabel: p.CategoryLabel,
		Dimensions:    p.Dimensions,
	}
}

// GetCategories returns the active category tree for the site's
// navigation, each category carrying its active subcategories.
func (h *PublicHandler) GetCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cats, err := h.Categories.ListActive(ctx)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]categoryPart, 0, len(cats))
	for _, cat := range cats {
		subs, err := h.Subcategories.ListByCategory(ctx, cat.ID, true)
		if err != nil {
			return writeError(c, err)
		}
		part := categoryPart{ID: cat.ID, Name: cat.Name, SortOrder: cat.SortOrder, Subcategories: []subcategoryPart{}}
		for _, s := range subs {
			part.Subcategories = append(part.Subcategories, subcategoryPart{ID: s.ID, Name: s.Name, SortOrder: s.SortOrder})
		}
		out = append(out, part)
	}
	return c.JSON(http.StatusOK, out)
}

// GetProducts returns the active products grouped by active category in
// catalog order.  Products without a category land in a trailing group
// with a nil category so the storefront can render them in a catch-all
// section.
func (h *PublicHandler) GetProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cats, err := h.Categories.ListActive(ctx)
	if err != nil {
		return writeError(c, err)
	}
	products, err := h.Products.ListActive(ctx)
	if err != nil {
		return writeError(c, err)
	}

	byCategory := make(map[uint64][]productCard)
	var loose []productCard
	known := make(map[uint64]bool, len(cats))
	for _, cat := range cats {
		known[cat.ID] = true
	}
	for _, p := range products {
		if p.CategoryID != 0 && known[p.CategoryID] {
			byCategory[p.CategoryID] = append(byCategory[p.CategoryID], toCard(p))
		} else {
			// Uncategorized, or the parent category is hidden.
			loose = append(loose, toCard(p))
		}
	}

	groups := make([]productGroup, 0, len(cats)+1)
	for _, cat := range cats {
		cards := byCategory[cat.ID]
		if len(cards) == 0 {
			continue
		}
		groups = append(groups, productGroup{
			Category: &categoryPart{ID: cat.ID, Name: cat.Name, SortOrder: cat.SortOrder, Subcategories: []subcategoryPart{}},
			Products: cards,
		})
	}
	if len(loose) > 0 {
		groups = append(groups, productGroup{Category: nil, Products: loose})
	}
	return c.JSON(http.StatusOK, groups)
}

// GetProduct serves the product-detail page data by slug, including the
// full image gallery and a strip of other visible products.
func (h *PublicHandler) GetProduct(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slug required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Products.GetBySlug(ctx, slug)
	if err != nil {
		return writeError(c, err)
	}
	if !p.Active {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}

	others, err := h.Products.ListOthers(ctx, p.Slug, otherProductsLimit)
	if err != nil {
		return writeError(c, err)
	}
	strip := make([]productCard, 0, len(others))
	for _, o := range others {
		strip = append(strip, toCard(o))
	}

	gallery := catalog.GalleryImageURLs(p)
	if gallery == nil {
		gallery = []string{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"product": productDetail{
			ID:             p.ID,
			Name:           p.Name,
			Slug:           p.Slug,
			Description:    p.Description,
			Tag:            p.Tag,
			CategoryID:     p.CategoryID,
			CategoryLabel:  p.CategoryLabel,
			Image:          catalog.DisplayImageURL(p),
			Gallery:        gallery,
			Dimensions:     p.Dimensions,
			Color:          p.Color,
			SaleUnit:       p.SaleUnit,
			Specifications: p.Specifications,
		},
		"others": strip,
	})
}
