package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"creditsea/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SessionRepository is the server-side session table
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpiredForUser(ctx context.Context, userID uuid.UUID, now time.Time) error
}

type sessionRepository struct {
	db DBTX
}

// NewSessionRepository creates a PostgreSQL-backed SessionRepository
func NewSessionRepository(db DBTX) SessionRepository {
	return &sessionRepository{db: db}
}

// Create inserts a new session
func (r *sessionRepository) Create(ctx context.Context, s *model.Session) error {
	sql := `INSERT INTO sessions (id, user_id, created_at, expires_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.db.Exec(ctx, sql, s.ID, s.UserID, s.CreatedAt, s.ExpiresAt); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// FindByID retrieves a session, or nil if it does not exist
func (r *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	s := &model.Session{}
	sql := `SELECT id, user_id, created_at, expires_at FROM sessions WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&s.ID, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return s, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredForUser prunes a user's sessions that expired before now
func (r *sessionRepository) DeleteExpiredForUser(ctx context.Context, userID uuid.UUID, now time.Time) error {
	sql := `DELETE FROM sessions WHERE user_id = $1 AND expires_at <= $2`
	if _, err := r.db.Exec(ctx, sql, userID, now); err != nil {
		return fmt.Errorf("failed to prune expired sessions: %w", err)
	}
	return nil
}
