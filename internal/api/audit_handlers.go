package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// listAuditHandler handles GET /api/audit
func (h *Handlers) listAuditHandler(c echo.Context) error {
	limit := 50
	offset := 0
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	entries, err := h.Audit.List(limit, offset)
	if err != nil {
		c.Logger().Error("list audit error: ", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	total, err := h.Audit.Count()
	if err != nil {
		c.Logger().Error("count audit error: ", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"entries": entries,
		"total":   total,
	})
}
