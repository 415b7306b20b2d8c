package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"vitrina/models"
	"vitrina/repository"
)

// SessionTTL is how long an admin session stays valid
const SessionTTL = 7 * 24 * time.Hour

// ErrInvalidCredentials is returned for an unknown email or a wrong password
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthServiceInterface defines the contract for admin login
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Logout(ctx context.Context, token string) error
}

// AuthService creates and removes admin sessions
type AuthService struct {
	sessions repository.SessionRepositoryInterface
	now      func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(sessions repository.SessionRepositoryInterface) *AuthService {
	return &AuthService{sessions: sessions, now: time.Now}
}

// Ensure AuthService implements AuthServiceInterface
var _ AuthServiceInterface = (*AuthService)(nil)

// Login checks the password against the stored bcrypt hash and issues a session
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.sessions.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Printf("⚠️  Failed login for %s", email)
		return nil, ErrInvalidCredentials
	}

	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: s.now().Add(SessionTTL),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Printf("✓ Admin %s logged in", email)
	return session, nil
}

// Logout deletes the session; an unknown token is not an error
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.DeleteSession(ctx, token); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return nil
}
