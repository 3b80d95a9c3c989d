package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"veldrith-backend/internal/models"
)

// recordSearchHandler handles POST /api/searches
func (h *Handlers) recordSearchHandler(c echo.Context) error {
	var req models.SearchRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Token == "" || req.Query == "" {
		return fail(c, http.StatusBadRequest, "Missing fields")
	}

	if !h.Auth.Validate(req.Username, req.Token) {
		return fail(c, http.StatusUnauthorized, "Invalid session")
	}

	var timestamp time.Time
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	}
	if err := h.Searches.Record(req.Username, req.Query, timestamp); err != nil {
		c.Logger().Error("record search error: ", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// listSearchesHandler handles GET /api/searches
func (h *Handlers) listSearchesHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"searches": h.Searches.List(),
	})
}
