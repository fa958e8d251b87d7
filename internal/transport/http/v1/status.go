package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Status reports hub-wide statistics.
// GET /v1/status
func (h *Handler) Status(c echo.Context) error {
	ctx := c.Request().Context()

	status, err := h.service.Status(ctx)
	if err != nil {
		return h.respondError(c, err)
	}

	return c.JSON(http.StatusOK, status)
}
