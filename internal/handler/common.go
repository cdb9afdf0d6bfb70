package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/estudiocobogo/catalogo-api/internal/repository"
	"github.com/estudiocobogo/catalogo-api/internal/service"
)

// pathID parses the :id route parameter.  Zero is never a valid id.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// writeError maps domain errors to HTTP responses.  Validation problems
// become 400 with the offending field, missing records 404, uniqueness
// collisions 409 and everything else a generic 500 so internals never
// leak to clients.
func writeError(c echo.Context, err error) error {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrSubcategoryNotFound),
		errors.Is(err, repository.ErrMessageNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, repository.ErrSlugTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": "slug already in use"})
	case errors.Is(err, repository.ErrDuplicateName):
		return c.JSON(http.StatusConflict, echo.Map{"error": "name already in use"})
	}
	c.Logger().Errorf("request failed: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
