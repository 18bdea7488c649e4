package dto

import (
	"time"

	"github.com/glowmart/storefront-service/internal/domain"
	"github.com/glowmart/storefront-service/internal/identity"
)

// LoginRequest payload for login on either surface.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest payload for customer registration.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// VerifyEmailRequest payload for confirmation links.
type VerifyEmailRequest struct {
	TokenHash string `json:"token_hash"`
}

// ForgotPasswordRequest payload for starting account recovery.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest payload for completing account recovery.
type ResetPasswordRequest struct {
	TokenHash       string `json:"token_hash"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// SessionResponse carries an issued session.
type SessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AccountResponse is the public view of an account record.
type AccountResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAccountResponse maps a domain account.
func NewAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Email:     account.Email,
		FullName:  account.FullName,
		Phone:     account.Phone,
		Role:      string(account.Role),
		IsActive:  account.IsActive,
		CreatedAt: account.CreatedAt,
	}
}

// NewSessionResponse maps an issued session, or nil when confirmation is
// still pending.
func NewSessionResponse(session *identity.Session) *SessionResponse {
	if session == nil {
		return nil
	}
	return &SessionResponse{Token: session.Token, ExpiresAt: session.ExpiresAt}
}
