package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/glowmart/storefront-service/internal/config"
	"github.com/glowmart/storefront-service/internal/events"
)

// LocalProvider implements Provider against the service's own credential
// store. It mirrors the contract of the hosted identity services this
// application was previously deployed against, including their free-text
// error messages, so TranslateError behaves the same either way.
type LocalProvider struct {
	store               *identityStore
	tokens              *TokenManager
	sessions            *SessionStore
	otps                *OtpStore
	dispatcher          events.Dispatcher
	logger              *zap.Logger
	bcryptCost          int
	confirmTTL          time.Duration
	resetTTL            time.Duration
	requireConfirmation bool
}

// NewLocalProvider wires the provider from its backing stores.
func NewLocalProvider(cfg config.AuthConfig, pool *pgxpool.Pool, redisClient *redis.Client, dispatcher events.Dispatcher, logger *zap.Logger) *LocalProvider {
	tokens := NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes)
	return &LocalProvider{
		store:               newIdentityStore(pool),
		tokens:              tokens,
		sessions:            NewSessionStore(redisClient, tokens.TTL()),
		otps:                NewOtpStore(redisClient),
		dispatcher:          dispatcher,
		logger:              logger,
		bcryptCost:          cfg.BcryptCost,
		confirmTTL:          time.Duration(cfg.ConfirmationTTLMinutes) * time.Minute,
		resetTTL:            time.Duration(cfg.PasswordResetTTLMinutes) * time.Minute,
		requireConfirmation: cfg.RequireEmailConfirmation,
	}
}

// SignInWithPassword verifies credentials and issues a session.
func (p *LocalProvider) SignInWithPassword(ctx context.Context, email, password string) (*User, *Session, error) {
	ident, err := p.store.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, errors.New(msgInvalidCredentials)
		}
		return nil, nil, err
	}
	if err := ComparePassword(ident.PasswordHash, password); err != nil {
		return nil, nil, errors.New(msgInvalidCredentials)
	}
	if !ident.EmailConfirmed {
		return nil, nil, errors.New(msgEmailNotConfirmed)
	}
	return p.issueSession(ctx, ident)
}

// SignUp creates a credential record. When email confirmation is required no
// session is returned and a confirmation link is dispatched instead.
func (p *LocalProvider) SignUp(ctx context.Context, email, password string, meta SignupMetadata) (*User, *Session, error) {
	email = normalizeEmail(email)

	if _, err := p.store.GetByEmail(ctx, email); err == nil {
		return nil, nil, errors.New(msgAlreadyRegistered)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, err
	}

	hash, err := HashPassword(password, p.bcryptCost)
	if err != nil {
		return nil, nil, err
	}

	ident := &Identity{
		ID:             uuid.NewString(),
		Email:          email,
		PasswordHash:   hash,
		EmailConfirmed: !p.requireConfirmation,
	}
	if err := p.store.Create(ctx, ident); err != nil {
		return nil, nil, err
	}

	user := userFrom(ident)

	if p.requireConfirmation {
		token := NewOtpToken()
		if err := p.otps.Save(ctx, OtpTypeSignup, token, ident.ID, p.confirmTTL); err != nil {
			return nil, nil, err
		}
		p.publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventAccountSignedUp,
			AccountID: ident.ID,
			Email:     ident.Email,
			Timestamp: time.Now(),
			Payload: events.AccountSignedUpPayload{
				FullName:             meta.FullName,
				ConfirmationURL:      confirmationURL(meta.RedirectTo, token, OtpTypeSignup),
				RequiresConfirmation: true,
			},
		})
		return user, nil, nil
	}

	_, session, err := p.issueSession(ctx, ident)
	if err != nil {
		return nil, nil, err
	}
	p.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccountSignedUp,
		AccountID: ident.ID,
		Email:     ident.Email,
		Timestamp: time.Now(),
		Payload:   events.AccountSignedUpPayload{FullName: meta.FullName},
	})
	return user, session, nil
}

// VerifyOtp redeems a single-use token. Signup tokens confirm the email
// address; both types establish a fresh session.
func (p *LocalProvider) VerifyOtp(ctx context.Context, tokenHash string, otpType OtpType) (*User, *Session, error) {
	userID, err := p.otps.Redeem(ctx, otpType, tokenHash)
	if err != nil {
		return nil, nil, err
	}

	ident, err := p.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, errors.New(msgTokenInvalid)
		}
		return nil, nil, err
	}

	if otpType == OtpTypeSignup && !ident.EmailConfirmed {
		if err := p.store.SetConfirmed(ctx, ident.ID); err != nil {
			return nil, nil, err
		}
		ident.EmailConfirmed = true
	}

	return p.issueSession(ctx, ident)
}

// ResetPasswordForEmail issues a recovery token and dispatches the reset
// link. Unknown addresses are reported as success so the endpoint cannot be
// used to probe for accounts.
func (p *LocalProvider) ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error {
	ident, err := p.store.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	token := NewOtpToken()
	if err := p.otps.Save(ctx, OtpTypeRecovery, token, ident.ID, p.resetTTL); err != nil {
		return err
	}

	p.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventPasswordResetRequested,
		AccountID: ident.ID,
		Email:     ident.Email,
		Timestamp: time.Now(),
		Payload: events.PasswordResetRequestedPayload{
			ResetURL: confirmationURL(redirectTo, token, OtpTypeRecovery),
		},
	})
	return nil
}

// UpdatePassword replaces the password for the session's identity.
func (p *LocalProvider) UpdatePassword(ctx context.Context, sessionToken, newPassword string) error {
	user, err := p.GetUser(ctx, sessionToken)
	if err != nil {
		return err
	}

	hash, err := HashPassword(newPassword, p.bcryptCost)
	if err != nil {
		return err
	}
	return p.store.SetPassword(ctx, user.ID, hash)
}

// SignOut revokes the session. Unknown and expired sessions are a no-op, so
// the operation is idempotent.
func (p *LocalProvider) SignOut(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	claims, err := p.tokens.ParseExpired(sessionToken)
	if err != nil {
		return nil
	}
	return p.sessions.Revoke(ctx, claims.ID)
}

// GetUser resolves the session to its identity.
func (p *LocalProvider) GetUser(ctx context.Context, sessionToken string) (*User, error) {
	if sessionToken == "" {
		return nil, errors.New(msgSessionInvalid)
	}

	claims, err := p.tokens.Parse(sessionToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New(msgSessionExpired)
		}
		return nil, errors.New(msgSessionInvalid)
	}

	live, err := p.sessions.IsLive(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !live {
		return nil, errors.New(msgSessionInvalid)
	}

	ident, err := p.store.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New(msgSessionInvalid)
		}
		return nil, err
	}
	return userFrom(ident), nil
}

// RevokeSessions ends every session held by the user.
func (p *LocalProvider) RevokeSessions(ctx context.Context, userID string) error {
	return p.sessions.RevokeAll(ctx, userID)
}

// DeleteUser removes the credential record and all of its sessions.
func (p *LocalProvider) DeleteUser(ctx context.Context, userID string) error {
	if err := p.sessions.RevokeAll(ctx, userID); err != nil {
		return err
	}
	return p.store.Delete(ctx, userID)
}

func (p *LocalProvider) issueSession(ctx context.Context, ident *Identity) (*User, *Session, error) {
	token, claims, err := p.tokens.Generate(ident.ID, ident.Email)
	if err != nil {
		return nil, nil, err
	}
	if err := p.sessions.Add(ctx, ident.ID, claims.ID); err != nil {
		return nil, nil, err
	}
	return userFrom(ident), &Session{Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (p *LocalProvider) publish(ctx context.Context, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil {
		p.logger.Warn("event publish failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}

func userFrom(ident *Identity) *User {
	return &User{ID: ident.ID, Email: ident.Email, EmailConfirmed: ident.EmailConfirmed}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func confirmationURL(redirectTo, token string, otpType OtpType) string {
	if redirectTo == "" {
		return ""
	}
	return redirectTo + "?token_hash=" + token + "&type=" + string(otpType)
}
