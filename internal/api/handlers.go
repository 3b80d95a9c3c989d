package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"veldrith-backend/internal/audit"
	"veldrith-backend/internal/auth"
	"veldrith-backend/internal/store"
)

// Handlers carries the stores and services the API routes depend on.
// Constructed once at process start and injected; nothing here is an
// ambient global.
type Handlers struct {
	Users    *store.UserRepo
	Sessions *store.SessionRegistry
	Searches *store.SearchLog
	Auth     *auth.Service
	Audit    *audit.Trail
}

// Health check
func (h *Handlers) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// audit records an entry without failing the request
func (h *Handlers) audit(c echo.Context, username, action, target string, details interface{}) {
	if h.Audit == nil {
		return
	}
	if err := h.Audit.Record(username, action, target, details, c.RealIP()); err != nil {
		c.Logger().Error("audit record error: ", err)
	}
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}
