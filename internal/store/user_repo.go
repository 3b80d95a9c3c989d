package store

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"veldrith-backend/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("username already exists")
	ErrBadPassword       = errors.New("invalid password")
	ErrAccountExpired    = errors.New("user account has expired")
)

const usersFile = "users.json"

// UserRepo owns the account collection. The in-memory slice is the
// source of truth; every mutation rewrites users.json before the call
// returns, so a crash after a successful response cannot lose it.
type UserRepo struct {
	mu    sync.RWMutex
	store *Store
	users []*models.User
}

// NewUserRepo loads the account collection from the store
func NewUserRepo(s *Store) (*UserRepo, error) {
	r := &UserRepo{store: s}
	if _, err := s.readDocument(usersFile, &r.users); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *UserRepo) save() error {
	return r.store.writeDocument(usersFile, r.users)
}

func (r *UserRepo) find(username string) *models.User {
	for _, u := range r.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

// Create provisions a time-limited account with a generated 4-digit
// access code. The code is returned once in plaintext; only its bcrypt
// hash is stored. expirationDays must be positive; callers validate
// the 1-365 range at the boundary.
func (r *UserRepo) Create(username string, expirationDays int) (*models.CreatedUser, error) {
	if expirationDays <= 0 {
		return nil, fmt.Errorf("expiration days must be positive, got %d", expirationDays)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(username) != nil {
		return nil, ErrUserAlreadyExists
	}

	// Low-value throwaway credential, not a cryptographic secret
	password := fmt.Sprintf("%04d", 1000+rand.Intn(9000))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := r.store.Now()
	expiresAt := now.AddDate(0, 0, expirationDays)

	r.users = append(r.users, &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		CreatedAt:    now,
		ExpiresAt:    &expiresAt,
	})

	if err := r.save(); err != nil {
		r.users = r.users[:len(r.users)-1]
		return nil, err
	}

	return &models.CreatedUser{
		Username:  username,
		Password:  password,
		ExpiresAt: expiresAt,
	}, nil
}

// CreateAdmin provisions a never-expiring admin account with the given
// password. Used by the bootstrap path when no users exist yet.
func (r *UserRepo) CreateAdmin(username, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(username) != nil {
		return ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	r.users = append(r.users, &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		CreatedAt:    r.store.Now(),
		ExpiresAt:    nil, // admin never expires
	})

	if err := r.save(); err != nil {
		r.users = r.users[:len(r.users)-1]
		return err
	}
	return nil
}

// Delete removes an account by username
func (r *UserRepo) Delete(username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.Username == username {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return r.save()
		}
	}
	return ErrUserNotFound
}

// Get returns a copy of the account record
func (r *UserRepo) Get(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u := r.find(username)
	if u == nil {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

// List returns all accounts in insertion order with expiry computed
// against the current clock
func (r *UserRepo) List() []models.PublicUser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.store.Now()
	out := make([]models.PublicUser, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, models.PublicUser{
			Username:  u.Username,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
			ExpiresAt: u.ExpiresAt,
			IsExpired: u.Expired(now),
		})
	}
	return out
}

// Now exposes the store clock, for projections over account state
func (r *UserRepo) Now() time.Time {
	return r.store.Now()
}

// Count returns the number of accounts
func (r *UserRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// ValidateCredentials checks username, then password, then expiration,
// in that order: a wrong password on an expired account reports
// ErrBadPassword, never ErrAccountExpired, so expiry status is not
// leaked to unauthenticated callers.
func (r *UserRepo) ValidateCredentials(username, password string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u := r.find(username)
	if u == nil {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrBadPassword
	}

	if u.Expired(r.store.Now()) {
		return nil, ErrAccountExpired
	}

	copied := *u
	return &copied, nil
}

// SetExpiration moves an account's expiration to the given instant.
// The credit-spend path computes the new value; the repo itself does
// not clamp. Admin accounts are exempt: the call is a no-op for them.
func (r *UserRepo) SetExpiration(username string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.find(username)
	if u == nil {
		return ErrUserNotFound
	}
	if u.IsAdmin() {
		return nil
	}

	prev := u.ExpiresAt
	u.ExpiresAt = &expiresAt
	if err := r.save(); err != nil {
		u.ExpiresAt = prev
		return err
	}
	return nil
}

// SweepExpired removes every non-admin account whose expiration is in
// the past and returns how many were removed. Admin accounts are
// exempt unconditionally. Safe to call repeatedly.
func (r *UserRepo) SweepExpired() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.store.Now()
	kept := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		if u.IsAdmin() || !u.Expired(now) {
			kept = append(kept, u)
		}
	}

	removed := len(r.users) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	prev := r.users
	r.users = kept
	if err := r.save(); err != nil {
		r.users = prev
		return 0, err
	}
	return removed, nil
}
