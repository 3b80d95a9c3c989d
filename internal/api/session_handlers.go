package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"veldrith-backend/internal/auth"
	"veldrith-backend/internal/models"
	"veldrith-backend/internal/store"
)

// listSessionsHandler handles GET /api/sessions
func (h *Handlers) listSessionsHandler(c echo.Context) error {
	sessions, err := h.Auth.ListSessions()
	if err != nil {
		c.Logger().Error("list sessions error: ", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"sessions": sessions,
	})
}

// forceLogoutHandler handles DELETE /api/sessions/:username
func (h *Handlers) forceLogoutHandler(c echo.Context) error {
	username := c.Param("username")

	if err := h.Auth.ForceLogout(username); err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return fail(c, http.StatusNotFound, "session not found")
		}
		c.Logger().Error("force logout error: ", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	h.audit(c, auth.UsernameFromContext(c), models.ActionSessionForceLogout, username, nil)

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}
