package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp:"

// OtpStore keeps single-use confirmation and recovery tokens in Redis.
// Redemption deletes the token, so replaying a consumed link always fails.
type OtpStore struct {
	client *redis.Client
}

// NewOtpStore builds the store.
func NewOtpStore(client *redis.Client) *OtpStore {
	return &OtpStore{client: client}
}

// Save stores a token for the user with the given lifetime.
func (s *OtpStore) Save(ctx context.Context, otpType OtpType, token, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, otpKey(otpType, token), userID, ttl).Err()
}

// Redeem consumes the token and returns the user id it was issued for.
// Expired, unknown and already-used tokens all fail the same way.
func (s *OtpStore) Redeem(ctx context.Context, otpType OtpType, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, otpKey(otpType, token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", errors.New(msgTokenInvalid)
		}
		return "", err
	}
	return userID, nil
}

func otpKey(otpType OtpType, token string) string {
	return otpKeyPrefix + string(otpType) + ":" + token
}

// NewOtpToken generates an opaque single-use token.
func NewOtpToken() string {
	sum := sha256.Sum256([]byte(uuid.NewString()))
	return hex.EncodeToString(sum[:])
}
