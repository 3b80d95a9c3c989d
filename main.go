package main

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"veldrith-backend/internal/api"
	"veldrith-backend/internal/audit"
	"veldrith-backend/internal/auth"
	"veldrith-backend/internal/config"
	"veldrith-backend/internal/store"
)

func main() {
	cfg := config.Load()

	log.Printf("Initializing data directory at %s", cfg.DataDir)
	st, err := store.Open(store.Config{Dir: cfg.DataDir})
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	users, err := store.NewUserRepo(st)
	if err != nil {
		log.Fatalf("Failed to load users: %v", err)
	}
	sessions, err := store.NewSessionRegistry(st, cfg.SessionStaleness)
	if err != nil {
		log.Fatalf("Failed to load sessions: %v", err)
	}
	searches, err := store.NewSearchLog(st, store.DefaultSearchCap)
	if err != nil {
		log.Fatalf("Failed to load searches: %v", err)
	}

	trail, err := audit.Open(audit.Config{Path: cfg.AuditDBPath})
	if err != nil {
		log.Fatalf("Failed to initialize audit trail: %v", err)
	}
	defer trail.Close()

	// Create default admin user if no users exist
	if err := createDefaultAdminIfNeeded(users); err != nil {
		log.Printf("Warning: failed to create default admin: %v", err)
	}

	authSvc := auth.NewService(users, sessions)

	// Periodic sweep of expired accounts and stale sessions
	go runSweeper(users, sessions, cfg.SweepInterval)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Portal-Username", "X-Portal-Token"},
		AllowCredentials: true,
	}))

	handlers := &api.Handlers{
		Users:    users,
		Sessions: sessions,
		Searches: searches,
		Auth:     authSvc,
		Audit:    trail,
	}

	limiter := auth.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	apiGroup := e.Group("/api")
	api.RegisterRoutes(apiGroup, handlers, limiter)

	log.Printf("Starting Veldrith backend on port %s", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

// runSweeper removes expired accounts and stale sessions on a fixed
// interval. Both sweeps are idempotent, so a transient no-op run is
// harmless.
func runSweeper(users *store.UserRepo, sessions *store.SessionRegistry, interval time.Duration) {
	ticker := time.NewTicker(interval)
	for range ticker.C {
		if removed, err := users.SweepExpired(); err != nil {
			log.Printf("Account sweep failed: %v", err)
		} else if removed > 0 {
			log.Printf("Cleaned up %d expired users", removed)
		}

		if evicted, err := sessions.SweepStale(); err != nil {
			log.Printf("Session sweep failed: %v", err)
		} else if evicted > 0 {
			log.Printf("Evicted %d stale sessions", evicted)
		}
	}
}

// createDefaultAdminIfNeeded bootstraps the first admin account. The
// password comes from the environment or is generated and printed
// once; it is never hardcoded.
func createDefaultAdminIfNeeded(users *store.UserRepo) error {
	if users.Count() > 0 {
		return nil
	}

	username := os.Getenv("VELDRITH_ADMIN_USER")
	if username == "" {
		username = "admin"
	}

	password := os.Getenv("VELDRITH_ADMIN_PASSWORD")
	if password == "" {
		buf := make([]byte, 9)
		if _, err := rand.Read(buf); err != nil {
			return err
		}
		password = hex.EncodeToString(buf)
		log.Printf("Creating default admin user %q with password %s - CHANGE THIS PASSWORD!", username, password)
	} else {
		log.Printf("Creating default admin user %q", username)
	}

	return users.CreateAdmin(username, password)
}
