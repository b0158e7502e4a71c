package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"harvest-keeper/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("email and password are required")
)

// SessionService handles the mock login. Credentials are not checked
// against anything; any non-blank pair is accepted.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
}

type sessionService struct {
	clock Clock
}

// NewSessionService creates a new instance of SessionService
func NewSessionService(clock Clock) SessionService {
	if clock == nil {
		clock = time.Now
	}
	return &sessionService{clock: clock}
}

// Login returns a session profile for the given email
func (s *sessionService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	display := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		display = email[:at]
	}

	return &domain.Session{
		Email:       email,
		DisplayName: display,
		LoggedInAt:  s.clock().UTC().Format(time.RFC3339),
	}, nil
}
