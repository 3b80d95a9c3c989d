package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"veldrith-backend/internal/models"
	"veldrith-backend/internal/store"
)

// loginHandler handles POST /api/auth/login
func (h *Handlers) loginHandler(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "Missing username or password")
	}

	resp, err := h.Auth.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			return fail(c, http.StatusUnauthorized, "User not found")
		case errors.Is(err, store.ErrBadPassword):
			return fail(c, http.StatusUnauthorized, "Invalid password")
		case errors.Is(err, store.ErrAccountExpired):
			return fail(c, http.StatusUnauthorized, "User account has expired")
		case errors.Is(err, store.ErrSessionInUse):
			return fail(c, http.StatusLocked, "Session currently in use")
		default:
			c.Logger().Error("login error: ", err)
			return fail(c, http.StatusInternalServerError, "Internal server error")
		}
	}

	h.audit(c, req.Username, models.ActionLogin, req.Username, nil)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user": map[string]interface{}{
			"username":   resp.User.Username,
			"role":       resp.User.Role,
			"expires_at": resp.User.ExpiresAt,
		},
		"session": resp.Session,
	})
}

// heartbeatHandler handles POST /api/auth/heartbeat
func (h *Handlers) heartbeatHandler(c echo.Context) error {
	var req models.SessionRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Token == "" {
		return fail(c, http.StatusBadRequest, "Missing username or token")
	}

	if err := h.Auth.Heartbeat(req.Username, req.Token); err != nil {
		switch {
		case errors.Is(err, store.ErrSessionNotFound),
			errors.Is(err, store.ErrBadToken),
			errors.Is(err, store.ErrSessionExpired):
			return fail(c, http.StatusUnauthorized, "invalid or expired session")
		default:
			c.Logger().Error("heartbeat error: ", err)
			return fail(c, http.StatusInternalServerError, "Internal server error")
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

// logoutHandler handles POST /api/auth/logout
func (h *Handlers) logoutHandler(c echo.Context) error {
	var req models.SessionRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Token == "" {
		return fail(c, http.StatusBadRequest, "Missing username or token")
	}

	if err := h.Auth.Logout(req.Username, req.Token); err != nil {
		switch {
		case errors.Is(err, store.ErrBadToken), errors.Is(err, store.ErrSessionNotFound):
			return fail(c, http.StatusUnauthorized, "Invalid session")
		default:
			c.Logger().Error("logout error: ", err)
			return fail(c, http.StatusInternalServerError, "Internal server error")
		}
	}

	h.audit(c, req.Username, models.ActionLogout, req.Username, nil)

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}
