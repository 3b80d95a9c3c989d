package store

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sort"
	"sync"
	"time"

	"veldrith-backend/internal/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionInUse    = errors.New("session currently in use")
	ErrBadToken        = errors.New("invalid session token")
	ErrSessionExpired  = errors.New("session expired")
)

const sessionsFile = "sessions.json"

// DefaultStaleAfter is how long a session stays live without a
// heartbeat before it stops blocking new logins.
const DefaultStaleAfter = 5 * time.Minute

// SessionRegistry enforces one active session per username. A stale
// slot no longer counts for exclusivity but lingers until it is swept
// or replaced by a fresh login; it is never silently revived.
type SessionRegistry struct {
	mu         sync.Mutex
	store      *Store
	sessions   map[string]*models.Session // keyed by username
	staleAfter time.Duration
}

// NewSessionRegistry loads the session map from the store
func NewSessionRegistry(s *Store, staleAfter time.Duration) (*SessionRegistry, error) {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	r := &SessionRegistry{
		store:      s,
		sessions:   make(map[string]*models.Session),
		staleAfter: staleAfter,
	}
	if _, err := s.readDocument(sessionsFile, &r.sessions); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SessionRegistry) save() error {
	return r.store.writeDocument(sessionsFile, r.sessions)
}

func (r *SessionRegistry) live(sess *models.Session, now time.Time) bool {
	return now.Sub(sess.LastSeen) <= r.staleAfter
}

// newToken generates an unguessable opaque session token
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Login creates a fresh session for the user. Callers must have
// already validated credentials. Fails with ErrSessionInUse while a
// prior session is still live; a stale slot is evicted and replaced.
func (r *SessionRegistry) Login(username string, role models.Role) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.store.Now()
	if existing, ok := r.sessions[username]; ok && r.live(existing, now) {
		return nil, ErrSessionInUse
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}

	sess := &models.Session{
		Username:  username,
		Token:     token,
		LoginTime: now,
		LastSeen:  now,
		Role:      role,
	}

	prev, had := r.sessions[username]
	r.sessions[username] = sess
	if err := r.save(); err != nil {
		if had {
			r.sessions[username] = prev
		} else {
			delete(r.sessions, username)
		}
		return nil, err
	}

	copied := *sess
	return &copied, nil
}

// Heartbeat refreshes the session's liveness marker. A stale session
// is not revived: the slot is evicted and the caller must log in again.
func (r *SessionRegistry) Heartbeat(username, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[username]
	if !ok {
		return ErrSessionNotFound
	}
	if sess.Token != token {
		return ErrBadToken
	}

	now := r.store.Now()
	if !r.live(sess, now) {
		delete(r.sessions, username)
		if err := r.save(); err != nil {
			r.sessions[username] = sess
			return err
		}
		return ErrSessionExpired
	}

	prev := sess.LastSeen
	sess.LastSeen = now
	if err := r.save(); err != nil {
		sess.LastSeen = prev
		return err
	}
	return nil
}

// Validate is a pure liveness+token check. Unlike Heartbeat it does
// not refresh LastSeen, so gating other API calls on it does not
// extend the session.
func (r *SessionRegistry) Validate(username, token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[username]
	if !ok || sess.Token != token {
		return false
	}
	return r.live(sess, r.store.Now())
}

// Logout removes the session; the presented token must match a
// currently valid session.
func (r *SessionRegistry) Logout(username, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[username]
	if !ok || sess.Token != token || !r.live(sess, r.store.Now()) {
		return ErrBadToken
	}

	delete(r.sessions, username)
	if err := r.save(); err != nil {
		r.sessions[username] = sess
		return err
	}
	return nil
}

// ForceLogout unconditionally clears any session for the username,
// regardless of token. Admin capability for freeing a stuck slot.
func (r *SessionRegistry) ForceLogout(username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[username]
	if !ok {
		return ErrSessionNotFound
	}

	delete(r.sessions, username)
	if err := r.save(); err != nil {
		r.sessions[username] = sess
		return err
	}
	return nil
}

// SweepStale evicts every session past the staleness threshold and
// returns how many were removed
func (r *SessionRegistry) SweepStale() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepStaleLocked()
}

func (r *SessionRegistry) sweepStaleLocked() (int, error) {
	now := r.store.Now()
	evicted := 0
	for username, sess := range r.sessions {
		if !r.live(sess, now) {
			delete(r.sessions, username)
			evicted++
		}
	}
	if evicted > 0 {
		if err := r.save(); err != nil {
			return 0, err
		}
	}
	return evicted, nil
}

// ListActive sweeps stale sessions, then returns the remainder sorted
// by login time. This sweep-on-read keeps the registry bounded even
// for sessions that went stale without logging out.
func (r *SessionRegistry) ListActive() ([]models.ActiveSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.sweepStaleLocked(); err != nil {
		return nil, err
	}

	out := make([]models.ActiveSession, 0, len(r.sessions))
	for _, sess := range r.sessions {
		out = append(out, models.ActiveSession{
			Username:  sess.Username,
			LoginTime: sess.LoginTime,
			LastSeen:  sess.LastSeen,
			Role:      sess.Role,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LoginTime.Before(out[j].LoginTime)
	})
	return out, nil
}
