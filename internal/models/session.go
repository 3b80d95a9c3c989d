package models

import "time"

// Session represents the single active session slot for a username.
// A session is live while now - LastSeen stays within the staleness
// threshold; once stale it no longer blocks a new login but remains in
// the registry until swept or replaced.
type Session struct {
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	LoginTime time.Time `json:"login_time"`
	LastSeen  time.Time `json:"last_seen"`
	Role      Role      `json:"role"`
}

// ActiveSession is the admin-facing listing shape; it omits the token.
type ActiveSession struct {
	Username  string    `json:"username"`
	LoginTime time.Time `json:"login_time"`
	LastSeen  time.Time `json:"last_seen"`
	Role      Role      `json:"role"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SessionRequest carries the {username, token} pair presented by
// heartbeat, logout and other session-gated calls.
type SessionRequest struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}
