package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/estudiocobogo/catalogo-api/internal/model"
	"github.com/estudiocobogo/catalogo-api/internal/repository"
	"github.com/estudiocobogo/catalogo-api/internal/service"
)

// AdminCategoryHandler exposes category CRUD plus the two cascade
// operations (delete-with-products and deep duplicate) to the
// dashboard.
type AdminCategoryHandler struct {
	Categories    *service.CategoryService
	Repo          *repository.CategoryRepo
	Subcategories *repository.SubcategoryRepo
}

func NewAdminCategoryHandler(svc *service.CategoryService, repo *repository.CategoryRepo, subs *repository.SubcategoryRepo) *AdminCategoryHandler {
	return &AdminCategoryHandler{Categories: svc, Repo: repo, Subcategories: subs}
}

type categoryReq struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	Active    bool   `json:"active"`
}

type adminCategoryResp struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toAdminCategory(cat *model.Category) adminCategoryResp {
	return adminCategoryResp{
		ID:        cat.ID,
		Name:      cat.Name,
		SortOrder: cat.SortOrder,
		Active:    cat.Active,
		CreatedAt: cat.CreatedAt,
		UpdatedAt: cat.UpdatedAt,
	}
}

// List returns every category, hidden ones included.
func (h *AdminCategoryHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cats, err := h.Repo.ListAll(ctx)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]adminCategoryResp, 0, len(cats))
	for _, cat := range cats {
		out = append(out, toAdminCategory(cat))
	}
	return c.JSON(http.StatusOK, out)
}

// Create adds a category.
func (h *AdminCategoryHandler) Create(c echo.Context) error {
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cat, err := h.Categories.Create(ctx, service.CategoryInput{Name: req.Name, SortOrder: req.SortOrder, Active: req.Active})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toAdminCategory(cat))
}

// Update edits a category's fields.
func (h *AdminCategoryHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req categoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cat, err := h.Categories.Edit(ctx, id, service.CategoryInput{Name: req.Name, SortOrder: req.SortOrder, Active: req.Active})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toAdminCategory(cat))
}

// Delete removes a category together with its products and reports how
// many products were deleted alongside it.
func (h *AdminCategoryHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	deleted, err := h.Categories.Delete(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted_products": deleted})
}

// Duplicate deep-copies a category and its products, returning the new
// category and the number of products copied.
func (h *AdminCategoryHandler) Duplicate(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	cat, copied, err := h.Categories.Duplicate(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"category":        toAdminCategory(cat),
		"copied_products": copied,
	})
}
