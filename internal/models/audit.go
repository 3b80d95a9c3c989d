package models

import "time"

// AuditEntry represents a record of portal actions
type AuditEntry struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	Details   string    `json:"details"` // JSON string
	IPAddress string    `json:"ip_address"`
}

// Common audit actions
const (
	ActionLogin              = "auth.login"
	ActionLogout             = "auth.logout"
	ActionSessionForceLogout = "session.force_logout"
	ActionUserCreate         = "user.create"
	ActionUserDelete         = "user.delete"
	ActionGameBet            = "game.bet"
)
