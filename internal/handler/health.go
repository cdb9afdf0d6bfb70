package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health responds with a minimal liveness payload for load balancers
// and uptime monitors.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
