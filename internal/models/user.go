package models

import "time"

// Role represents user access levels
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User represents a portal account. ExpiresAt is nil only for admin
// accounts, which never expire; for regular users the remaining days
// before ExpiresAt double as the spendable credit balance.
type User struct {
	Username     string     `json:"username"`
	PasswordHash string     `json:"password_hash"` // persisted only, never exposed via the API
	Role         Role       `json:"role"`
	CreatedAt    time.Time  `json:"created_at"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

// IsAdmin returns true if the user has admin privileges
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Expired reports whether the account is past its expiration at the
// given instant. An expiration exactly equal to now counts as expired.
func (u *User) Expired(now time.Time) bool {
	return u.ExpiresAt != nil && !u.ExpiresAt.After(now)
}

// PublicUser is the listing shape returned by GET /api/users
type PublicUser struct {
	Username  string     `json:"username"`
	Role      Role       `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at"`
	IsExpired bool       `json:"is_expired"`
}

// CreatedUser is returned once from account creation and is the only
// place the generated password appears in plaintext.
type CreatedUser struct {
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Username       string `json:"username"`
	ExpirationDays int    `json:"expirationDays"`
}
