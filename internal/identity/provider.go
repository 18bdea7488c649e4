package identity

import (
	"context"
	"time"
)

// User is the identity-provider view of a credential holder.
type User struct {
	ID             string
	Email          string
	EmailConfirmed bool
}

// Session is an issued credential session.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// SignupMetadata is attached to the identity record at creation. Role is
// always forced to customer by the caller; the provider never decides
// privilege.
type SignupMetadata struct {
	FullName   string
	Phone      string
	Role       string
	RedirectTo string
}

// OtpType distinguishes redeemable token purposes.
type OtpType string

const (
	OtpTypeSignup   OtpType = "signup"
	OtpTypeRecovery OtpType = "recovery"
)

// Provider is the identity boundary consumed by the authentication service.
// Implementations return free-text error messages; TranslateError is the only
// place allowed to interpret them, so a hosted provider can be swapped in
// without touching callers.
type Provider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*User, *Session, error)
	SignUp(ctx context.Context, email, password string, meta SignupMetadata) (*User, *Session, error)
	VerifyOtp(ctx context.Context, tokenHash string, otpType OtpType) (*User, *Session, error)
	ResetPasswordForEmail(ctx context.Context, email, redirectTo string) error
	UpdatePassword(ctx context.Context, sessionToken, newPassword string) error
	SignOut(ctx context.Context, sessionToken string) error
	GetUser(ctx context.Context, sessionToken string) (*User, error)

	// Administrative operations used by the account lifecycle: deactivation
	// and deletion must be able to end every session the subject holds.
	RevokeSessions(ctx context.Context, userID string) error
	DeleteUser(ctx context.Context, userID string) error
}
