package handler

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/estudiocobogo/catalogo-api/internal/catalog"
	"github.com/estudiocobogo/catalogo-api/internal/model"
	"github.com/estudiocobogo/catalogo-api/internal/repository"
	"github.com/estudiocobogo/catalogo-api/internal/service"
)

// maxUploadBytes caps a single uploaded image.
const maxUploadBytes = 10 << 20

// AdminProductHandler exposes the product lifecycle to the owner's
// dashboard.  Create and edit accept multipart forms so image uploads
// travel with the field values; everything else is plain JSON.
type AdminProductHandler struct {
	Products *service.ProductService
	Repo     *repository.ProductRepo
}

func NewAdminProductHandler(svc *service.ProductService, repo *repository.ProductRepo) *AdminProductHandler {
	return &AdminProductHandler{Products: svc, Repo: repo}
}

type adminProductResp struct {
	ID             uint64    `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description"`
	CategoryID     uint64    `json:"category_id,omitempty"`
	CategoryLabel  string    `json:"category_label,omitempty"`
	Tag            string    `json:"tag"`
	Image1         string    `json:"image_1,omitempty"`
	Image2         string    `json:"image_2,omitempty"`
	Image3         string    `json:"image_3,omitempty"`
	ImageFilename  string    `json:"image_filename,omitempty"`
	Image          string    `json:"image"`
	Dimensions     string    `json:"dimensions,omitempty"`
	Color          string    `json:"color,omitempty"`
	SaleUnit       string    `json:"sale_unit,omitempty"`
	Specifications string    `json:"specifications,omitempty"`
	Active         bool      `json:"active"`
	SortOrder      int       `json:"sort_order"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toAdminProduct(p *model.Product) adminProductResp {
	return adminProductResp{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		CategoryID:     p.CategoryID,
		CategoryLabel:  p.CategoryLabel,
		Tag:            p.Tag,
		Image1:         p.Image1,
		Image2:         p.Image2,
		Image3:         p.Image3,
		ImageFilename:  p.ImageFilename,
		Image:          catalog.DisplayImageURL(p),
		Dimensions:     p.Dimensions,
		Color:          p.Color,
		SaleUnit:       p.SaleUnit,
		Specifications: p.Specifications,
		Active:         p.Active,
		SortOrder:      p.SortOrder,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// List returns every product, drafts included, for the dashboard table.
func (h *AdminProductHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	products, err := h.Repo.ListAll(ctx)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]adminProductResp, 0, len(products))
	for _, p := range products {
		out = append(out, toAdminProduct(p))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns a single product by id for the edit form.
func (h *AdminProductHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toAdminProduct(p))
}

// Create accepts a multipart form with the product fields plus optional
// image_1..image_3 file parts.
func (h *AdminProductHandler) Create(c echo.Context) error {
	in, uploads, _, err := parseProductForm(c)
	if err != nil {
		return formError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	p, err := h.Products.Create(ctx, in, uploads)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toAdminProduct(p))
}

// Update accepts the same multipart form as Create plus
// remove_image_1..remove_image_3 flags for clearing slots.
func (h *AdminProductHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	in, uploads, removals, err := parseProductForm(c)
	if err != nil {
		return formError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	p, err := h.Products.Edit(ctx, id, in, uploads, removals)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toAdminProduct(p))
}

// Duplicate copies a product under a "(Copy)" name with a fresh slug.
func (h *AdminProductHandler) Duplicate(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	p, err := h.Products.Duplicate(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toAdminProduct(p))
}

// Delete removes a product permanently.
func (h *AdminProductHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Products.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// formError maps a multipart parse failure to its response.  Errors
// that already carry an HTTP status (oversized uploads report 413) pass
// through; anything else is a plain bad request.
func formError(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
}

// parseProductForm reads the product multipart form: scalar fields,
// uploaded image slots and the removal flags.
func parseProductForm(c echo.Context) (service.ProductInput, map[int]service.Upload, [3]bool, error) {
	var removals [3]bool
	in := service.ProductInput{
		Name:           c.FormValue("name"),
		Slug:           c.FormValue("slug"),
		Description:    c.FormValue("description"),
		CategoryID:     formUint(c, "category_id"),
		CategoryLabel:  c.FormValue("category_label"),
		Tag:            c.FormValue("tag"),
		ImageFilename:  c.FormValue("image_filename"),
		Dimensions:     c.FormValue("dimensions"),
		Color:          c.FormValue("color"),
		SaleUnit:       c.FormValue("sale_unit"),
		Specifications: c.FormValue("specifications"),
		Active:         formBool(c, "active"),
		SortOrder:      formInt(c, "sort_order"),
	}

	uploads := map[int]service.Upload{}
	slotNames := [3]string{"image_1", "image_2", "image_3"}
	for i, field := range slotNames {
		fh, err := c.FormFile(field)
		if err != nil {
			continue // slot not submitted
		}
		up, err := readUpload(fh)
		if err != nil {
			return in, nil, removals, err
		}
		uploads[i+1] = up
	}
	for i, field := range slotNames {
		removals[i] = formBool(c, "remove_"+field)
	}
	return in, uploads, removals, nil
}

func readUpload(fh *multipart.FileHeader) (service.Upload, error) {
	if fh.Size > maxUploadBytes {
		return service.Upload{}, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image too large")
	}
	f, err := fh.Open()
	if err != nil {
		return service.Upload{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		return service.Upload{}, err
	}
	if len(data) > maxUploadBytes {
		return service.Upload{}, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image too large")
	}
	return service.Upload{Filename: fh.Filename, Data: data}, nil
}

func formBool(c echo.Context, field string) bool {
	switch c.FormValue(field) {
	case "1", "true", "TRUE", "True", "on", "yes":
		return true
	}
	return false
}

func formInt(c echo.Context, field string) int {
	n, _ := strconv.Atoi(c.FormValue(field))
	return n
}

func formUint(c echo.Context, field string) uint64 {
	n, _ := strconv.ParseUint(c.FormValue(field), 10, 64)
	return n
}
