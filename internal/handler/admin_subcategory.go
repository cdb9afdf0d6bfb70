package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/estudiocobogo/catalogo-api/internal/model"
	"github.com/estudiocobogo/catalogo-api/internal/service"
)

// AdminSubcategoryHandler exposes subcategory CRUD.  Subcategories are
// navigation labels only; deleting one never touches products.
type AdminSubcategoryHandler struct {
	Categories *service.CategoryService
}

func NewAdminSubcategoryHandler(svc *service.CategoryService) *AdminSubcategoryHandler {
	return &AdminSubcategoryHandler{Categories: svc}
}

type subcategoryReq struct {
	CategoryID uint64 `json:"category_id"`
	Name       string `json:"name"`
	SortOrder  int    `json:"sort_order"`
	Active     bool   `json:"active"`
}

type adminSubcategoryResp struct {
	ID         uint64    `json:"id"`
	CategoryID uint64    `json:"category_id"`
	Name       string    `json:"name"`
	SortOrder  int       `json:"sort_order"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toAdminSubcategory(s *model.Subcategory) adminSubcategoryResp {
	return adminSubcategoryResp{
		ID:         s.ID,
		CategoryID: s.CategoryID,
		Name:       s.Name,
		SortOrder:  s.SortOrder,
		Active:     s.Active,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// Create adds a subcategory under the category named in the path.
func (h *AdminSubcategoryHandler) Create(c echo.Context) error {
	categoryID, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req subcategoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sub, err := h.Categories.CreateSubcategory(ctx, service.SubcategoryInput{
		CategoryID: categoryID, Name: req.Name, SortOrder: req.SortOrder, Active: req.Active,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toAdminSubcategory(sub))
}

// Update edits a subcategory, optionally moving it to another category.
func (h *AdminSubcategoryHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req subcategoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sub, err := h.Categories.EditSubcategory(ctx, id, service.SubcategoryInput{
		CategoryID: req.CategoryID, Name: req.Name, SortOrder: req.SortOrder, Active: req.Active,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toAdminSubcategory(sub))
}

// Delete removes a subcategory.
func (h *AdminSubcategoryHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Categories.DeleteSubcategory(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
