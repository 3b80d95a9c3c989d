package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"veldrith-backend/internal/auth"
	"veldrith-backend/internal/models"
	"veldrith-backend/internal/store"
)

// createUserHandler handles POST /api/users/create
func (h *Handlers) createUserHandler(c echo.Context) error {
	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.ExpirationDays == 0 {
		return fail(c, http.StatusBadRequest, "Missing username or expiration days")
	}
	if req.ExpirationDays < 1 || req.ExpirationDays > 365 {
		return fail(c, http.StatusBadRequest, "expiration days must be between 1 and 365")
	}

	created, err := h.Users.Create(req.Username, req.ExpirationDays)
	if err != nil {
		if errors.Is(err, store.ErrUserAlreadyExists) {
			return fail(c, http.StatusBadRequest, "Username already exists")
		}
		c.Logger().Error("create user error: ", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	h.audit(c, auth.UsernameFromContext(c), models.ActionUserCreate, created.Username, map[string]interface{}{
		"expiration_days": req.ExpirationDays,
		"expires_at":      created.ExpiresAt,
	})

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    created,
	})
}

// listUsersHandler handles GET /api/users
func (h *Handlers) listUsersHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"users":   h.Users.List(),
	})
}

// deleteUserHandler handles DELETE /api/users/:username
func (h *Handlers) deleteUserHandler(c echo.Context) error {
	username := c.Param("username")

	if err := h.Users.Delete(username); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return fail(c, http.StatusNotFound, "User not found")
		}
		c.Logger().Error("delete user error: ", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}

	h.audit(c, auth.UsernameFromContext(c), models.ActionUserDelete, username, nil)

	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}
