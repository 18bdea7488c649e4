package identity

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenManager handles issuing and validating JWT session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Claims describes the JWT payload. Subject carries the identity id and ID
// (jti) keys the session allow-list.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Generate builds and signs a JWT for the identity.
func (tm *TokenManager) Generate(userID, email string) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", nil, err
	}
	return tokenString, claims, nil
}

// Parse validates and returns claims.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, tm.keyFunc)
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ParseExpired returns claims even when the token has expired, for revocation
// paths where an expired session still needs its jti removed. The signature
// is still verified.
func (tm *TokenManager) ParseExpired(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(tokenStr, claims, tm.keyFunc); err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			return nil, err
		}
	}
	return claims, nil
}

func (tm *TokenManager) keyFunc(token *jwt.Token) (interface{}, error) {
	if token.Method != jwt.SigningMethodHS256 {
		return nil, errors.New("unexpected signing method")
	}
	return tm.secret, nil
}

// TTL exposes the configured session lifetime.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}
