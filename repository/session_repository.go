package repository

import (
	"context"
	"fmt"
	"log"

	"vitrina/db"
	"vitrina/models"
)

// SessionRepository handles admin sessions and users
type SessionRepository struct{}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

// Ensure SessionRepository implements SessionRepositoryInterface
var _ SessionRepositoryInterface = (*SessionRepository)(nil)

// GetSession returns the unexpired session for token
func (r *SessionRepository) GetSession(ctx context.Context, token string) (*models.Session, error) {
	query := `
		SELECT s.token, s.usuario_id, u.email, s.expires_at
		FROM sesiones s
		INNER JOIN admin_usuarios u ON u.id = s.usuario_id
		WHERE s.token = $1 AND s.expires_at > NOW()
	`
	var s models.Session
	err := db.DB.QueryRowContext(ctx, query, token).Scan(&s.Token, &s.UserID, &s.Email, &s.ExpiresAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

// CreateSession stores a new session
func (r *SessionRepository) CreateSession(ctx context.Context, session *models.Session) error {
	_, err := db.DB.ExecContext(ctx,
		`INSERT INTO sesiones (token, usuario_id, expires_at) VALUES ($1, $2, $3)`,
		session.Token, session.UserID, session.ExpiresAt,
	)
	if err != nil {
		log.Printf("❌ Error creating session for user %s: %v", session.UserID, err)
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// DeleteSession removes a session; deleting an unknown token is not an error
func (r *SessionRepository) DeleteSession(ctx context.Context, token string) error {
	if _, err := db.DB.ExecContext(ctx, `DELETE FROM sesiones WHERE token = $1`, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// GetUserByEmail returns the admin user with the given email
func (r *SessionRepository) GetUserByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var u models.AdminUser
	err := db.DB.QueryRowContext(ctx,
		`SELECT id, email, password_hash FROM admin_usuarios WHERE LOWER(email) = LOWER($1)`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}
