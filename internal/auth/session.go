package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ayush/employee-admin/internal/apperr"
)

const sessionKeyPrefix = "session:"

// Session is the server-side half of a login. The cookie only names it.
type Session struct {
	Username    string    `json:"username"`
	UserAgent   string    `json:"user_agent"`
	Fingerprint string    `json:"fingerprint"`
	CreatedAt   time.Time `json:"created_at"`
}

// SessionStore wraps Redis for session management.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

// Create stores sess under a new random id that expires after ttl.
func (s *SessionStore) Create(ctx context.Context, sess Session, ttl time.Duration) (string, error) {
	data, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	sid := uuid.New().String()
	if err := s.rdb.Set(ctx, sessionKeyPrefix+sid, data, ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return sid, nil
}

// Get returns the session, or an Authentication error when it is unknown or expired.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	val, err := s.rdb.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperr.ErrSessionExpired
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(val, &sess); err != nil {
		return nil, apperr.Wrap(err, apperr.Authentication, apperr.ErrInvalidToken.Message)
	}
	return &sess, nil
}

// Delete removes a session. Deleting an unknown session is not an error.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
