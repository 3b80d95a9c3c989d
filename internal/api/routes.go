package api

import (
	"github.com/labstack/echo/v4"

	"veldrith-backend/internal/auth"
)

// RegisterRoutes sets up all API routes. The whole group sits behind
// the request rate limiter; admin surfaces additionally require a
// live admin session.
func RegisterRoutes(api *echo.Group, h *Handlers, limiter *auth.RateLimiter) {
	api.Use(limiter.Middleware())

	// Health check (public)
	api.GET("/health", h.healthCheck)

	// Auth routes (public - session state travels in the body)
	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.loginHandler)
	authGroup.POST("/heartbeat", h.heartbeatHandler)
	authGroup.POST("/logout", h.logoutHandler)

	// Search recording validates the body token itself; listing is
	// part of the admin view.
	api.POST("/searches", h.recordSearchHandler)

	// Game settlement validates the body token itself
	api.POST("/gambling/bet", h.betHandler)

	// Admin panel routes
	admin := api.Group("")
	admin.Use(auth.RequireSession(h.Auth))
	admin.Use(auth.RequireAdmin(h.Users))
	admin.POST("/users/create", h.createUserHandler)
	admin.GET("/users", h.listUsersHandler)
	admin.DELETE("/users/:username", h.deleteUserHandler)
	admin.GET("/sessions", h.listSessionsHandler)
	admin.DELETE("/sessions/:username", h.forceLogoutHandler)
	admin.GET("/searches", h.listSearchesHandler)
	admin.GET("/audit", h.listAuditHandler)
}
