package identity

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	accountKeyPrefix = "account_sessions:"
)

// SessionStore tracks live session ids in Redis so sign-out and deactivation
// can revoke JWTs before they expire.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore builds the store. Entries expire alongside the tokens they
// track.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Add registers a freshly issued session.
func (s *SessionStore) Add(ctx context.Context, userID, jti string) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+jti, userID, s.ttl)
	pipe.SAdd(ctx, accountKeyPrefix+userID, jti)
	pipe.Expire(ctx, accountKeyPrefix+userID, s.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// IsLive reports whether the session id is still on the allow-list.
func (s *SessionStore) IsLive(ctx context.Context, jti string) (bool, error) {
	if err := s.client.Get(ctx, sessionKeyPrefix+jti).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Revoke removes one session. Revoking an unknown session is a no-op.
func (s *SessionStore) Revoke(ctx context.Context, jti string) error {
	userID, err := s.client.GetDel(ctx, sessionKeyPrefix+jti).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	return s.client.SRem(ctx, accountKeyPrefix+userID, jti).Err()
}

// RevokeAll removes every session held by the user.
func (s *SessionStore) RevokeAll(ctx context.Context, userID string) error {
	jtis, err := s.client.SMembers(ctx, accountKeyPrefix+userID).Result()
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	for _, jti := range jtis {
		pipe.Del(ctx, sessionKeyPrefix+jti)
	}
	pipe.Del(ctx, accountKeyPrefix+userID)
	_, err = pipe.Exec(ctx)
	return err
}
