// Package audit keeps an append-only trail of portal actions in a
// local sqlite database, separate from the flat-JSON state documents.
package audit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"veldrith-backend/internal/models"
)

// Trail owns the audit database connection
type Trail struct {
	db *sql.DB
}

// Config holds audit trail configuration
type Config struct {
	Path string
}

// Open initializes the audit database and runs migrations
func Open(cfg Config) (*Trail, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create audit directory: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping audit database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS audit_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp DATETIME NOT NULL,
			username TEXT NOT NULL,
			action TEXT NOT NULL,
			target TEXT,
			details TEXT,
			ip_address TEXT
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate audit database: %w", err)
	}

	return &Trail{db: db}, nil
}

// Close closes the audit database
func (t *Trail) Close() error {
	return t.db.Close()
}

// Record appends one entry with the current timestamp. Details are
// serialized to JSON; a marshal failure degrades to an empty object
// rather than dropping the entry.
func (t *Trail) Record(username, action, target string, details interface{}, ipAddress string) error {
	detailsJSON := "{}"
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			detailsJSON = string(b)
		}
	}

	_, err := t.db.Exec(`
		INSERT INTO audit_entries (timestamp, username, action, target, details, ip_address)
		VALUES (?, ?, ?, ?, ?, ?)
	`, time.Now(), username, action, target, detailsJSON, ipAddress)
	return err
}

// List returns entries newest first, paginated
func (t *Trail) List(limit, offset int) ([]models.AuditEntry, error) {
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := t.db.Query(`
		SELECT id, timestamp, username, action, target, details, ip_address
		FROM audit_entries ORDER BY timestamp DESC, id DESC LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		var target, details, ipAddress sql.NullString
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Username, &e.Action, &target, &details, &ipAddress); err != nil {
			return nil, err
		}
		e.Target = target.String
		e.Details = details.String
		e.IPAddress = ipAddress.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the total number of entries
func (t *Trail) Count() (int, error) {
	var count int
	err := t.db.QueryRow("SELECT COUNT(*) FROM audit_entries").Scan(&count)
	return count, err
}
