package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"veldrith-backend/internal/store"
)

// Context keys for storing session data
const (
	ContextKeyUsername = "session_username"
	ContextKeyRole     = "session_role"
)

// RequireSession middleware validates the {username, token} pair from
// the request headers without refreshing the session; heartbeats are
// the only calls that extend liveness.
func RequireSession(authSvc *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username := c.Request().Header.Get("X-Portal-Username")
			token := c.Request().Header.Get("X-Portal-Token")
			if username == "" || token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"error":   "authentication required",
				})
			}

			if !authSvc.Validate(username, token) {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"error":   "invalid or expired session",
				})
			}

			c.Set(ContextKeyUsername, username)
			return next(c)
		}
	}
}

// RequireAdmin middleware checks the authenticated user's role.
// Must be used after RequireSession.
func RequireAdmin(users *store.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, ok := c.Get(ContextKeyUsername).(string)
			if !ok || username == "" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"error":   "authentication required",
				})
			}

			user, err := users.Get(username)
			if err != nil || !user.IsAdmin() {
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"success": false,
					"error":   "insufficient permissions",
				})
			}

			return next(c)
		}
	}
}

// UsernameFromContext retrieves the authenticated username
func UsernameFromContext(c echo.Context) string {
	username, _ := c.Get(ContextKeyUsername).(string)
	return username
}
