package auth

import (
	"veldrith-backend/internal/models"
	"veldrith-backend/internal/store"
)

// Service ties credential validation to session issuance: the session
// registry is only consulted after the account store accepts the
// credentials, and the single-session gate runs inside the registry's
// login, so a live session always wins over a second login attempt.
type Service struct {
	users    *store.UserRepo
	sessions *store.SessionRegistry
}

// NewService creates a new auth service
func NewService(users *store.UserRepo, sessions *store.SessionRegistry) *Service {
	return &Service{users: users, sessions: sessions}
}

// LoginResponse represents a successful login
type LoginResponse struct {
	User    *models.User    `json:"user"`
	Session *models.Session `json:"session"`
}

// Login authenticates the credentials and creates the session
func (s *Service) Login(username, password string) (*LoginResponse, error) {
	user, err := s.users.ValidateCredentials(username, password)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Login(username, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{User: user, Session: session}, nil
}

// Heartbeat refreshes the session's liveness marker
func (s *Service) Heartbeat(username, token string) error {
	return s.sessions.Heartbeat(username, token)
}

// Validate checks the session without extending it
func (s *Service) Validate(username, token string) bool {
	return s.sessions.Validate(username, token)
}

// Logout removes the session when the presented token is valid
func (s *Service) Logout(username, token string) error {
	return s.sessions.Logout(username, token)
}

// ForceLogout clears any session for the username regardless of token
func (s *Service) ForceLogout(username string) error {
	return s.sessions.ForceLogout(username)
}

// ListSessions sweeps stale sessions and returns the live ones
func (s *Service) ListSessions() ([]models.ActiveSession, error) {
	return s.sessions.ListActive()
}
