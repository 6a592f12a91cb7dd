package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"creditsea/internal/model"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const sessionKeyPrefix = "creditsea:session:"

// redisSessionRepository keeps sessions as JSON values that Redis expires on its own
type redisSessionRepository struct {
	client redis.Cmdable
	now    func() time.Time
}

// NewRedisSessionRepository creates a Redis-backed SessionRepository
func NewRedisSessionRepository(client redis.Cmdable) SessionRepository {
	return &redisSessionRepository{client: client, now: time.Now}
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

func (r *redisSessionRepository) Create(ctx context.Context, s *model.Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return fmt.Errorf("failed to create session: already expired")
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey(s.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *redisSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Session, error) {
	payload, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	var s model.Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredForUser is a no-op: keys carry their own TTL.
func (r *redisSessionRepository) DeleteExpiredForUser(ctx context.Context, userID uuid.UUID, now time.Time) error {
	return nil
}
