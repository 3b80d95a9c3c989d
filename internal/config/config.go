package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the portal's environment surface
type Config struct {
	Port             string
	DataDir          string
	AuditDBPath      string
	RateLimitMax     int
	RateLimitWindow  time.Duration
	SweepInterval    time.Duration
	SessionStaleness time.Duration
}

// Load reads .env if present, then the environment, applying defaults
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	return &Config{
		Port:             getenv("VELDRITH_PORT", "8080"),
		DataDir:          getenv("VELDRITH_DATA_DIR", "./data"),
		AuditDBPath:      getenv("VELDRITH_AUDIT_DB", "./data/audit.db"),
		RateLimitMax:     getint("VELDRITH_RATE_LIMIT_MAX", 25000),
		RateLimitWindow:  getduration("VELDRITH_RATE_LIMIT_WINDOW", 15*time.Minute),
		SweepInterval:    getduration("VELDRITH_SWEEP_INTERVAL", time.Minute),
		SessionStaleness: getduration("VELDRITH_SESSION_STALENESS", 5*time.Minute),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Printf("Warning: invalid %s=%q, using %d", key, v, fallback)
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		log.Printf("Warning: invalid %s=%q, using %s", key, v, fallback)
	}
	return fallback
}
