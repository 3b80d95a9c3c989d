package models

import "time"

// SearchEntry is one recorded query. Entries are immutable and kept in
// insertion order; the log drops the oldest entries once the retention
// cap is exceeded.
type SearchEntry struct {
	Username  string    `json:"username"`
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
}

// SearchRequest represents the request body for recording a search
type SearchRequest struct {
	Username  string     `json:"username"`
	Token     string     `json:"token"`
	Query     string     `json:"query"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}
