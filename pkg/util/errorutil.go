package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// Error codes form a closed taxonomy shared by every layer of the service.
const (
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeAccountInactive     = "ACCOUNT_INACTIVE"
	CodeAccountNotConfirmed = "ACCOUNT_NOT_CONFIRMED"
	CodeUnauthorizedRole    = "UNAUTHORIZED_ROLE"
	CodeAccessDenied        = "ACCESS_DENIED"
	CodeProfileNotFound     = "PROFILE_NOT_FOUND"
	CodeSessionExpired      = "SESSION_EXPIRED"
	CodeSessionInvalid      = "SESSION_INVALID"
	CodeLoginFailed         = "LOGIN_FAILED"
	CodeSignupFailed        = "SIGNUP_FAILED"
	CodeLogoutFailed        = "LOGOUT_FAILED"
	CodePasswordResetFailed = "PASSWORD_RESET_FAILED"
	CodeTimeout             = "TIMEOUT"
	CodeUnknownError        = "UNKNOWN_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeValidationFailed    = "VALIDATION_FAILED"
)

// DomainError standardizes application errors. Redirect, when set, tells the
// caller where to send the user so handlers never invent their own redirect
// policy.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Redirect   string
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewInvalidCredentials(message string) error {
	return NewDomainError(CodeInvalidCredentials, message, http.StatusBadRequest, nil)
}

func NewAccountInactive(redirect string) error {
	return &DomainError{
		Code:       CodeAccountInactive,
		Message:    "account is deactivated",
		HTTPStatus: http.StatusForbidden,
		Redirect:   redirect,
	}
}

func NewAccountNotConfirmed(message string) error {
	return NewDomainError(CodeAccountNotConfirmed, message, http.StatusForbidden, nil)
}

func NewUnauthorizedRole(redirect string) error {
	return &DomainError{
		Code:       CodeUnauthorizedRole,
		Message:    "unauthorized",
		HTTPStatus: http.StatusForbidden,
		Redirect:   redirect,
	}
}

func NewAccessDenied(redirect string, details map[string]any) error {
	return &DomainError{
		Code:       CodeAccessDenied,
		Message:    "unauthorized",
		HTTPStatus: http.StatusForbidden,
		Redirect:   redirect,
		Details:    details,
	}
}

func NewProfileNotFound(redirect string) error {
	return &DomainError{
		Code:       CodeProfileNotFound,
		Message:    "account record not found",
		HTTPStatus: http.StatusForbidden,
		Redirect:   redirect,
	}
}

func NewSessionExpired() error {
	return NewDomainError(CodeSessionExpired, "session has expired", http.StatusUnauthorized, nil)
}

func NewSessionInvalid(redirect string) error {
	return &DomainError{
		Code:       CodeSessionInvalid,
		Message:    "not authenticated",
		HTTPStatus: http.StatusUnauthorized,
		Redirect:   redirect,
	}
}

func NewLoginFailed(message string) error {
	return NewDomainError(CodeLoginFailed, message, http.StatusUnauthorized, nil)
}

func NewSignupFailed(message string) error {
	return NewDomainError(CodeSignupFailed, message, http.StatusBadRequest, nil)
}

func NewLogoutFailed(err error) error {
	return &DomainError{
		Code:       CodeLogoutFailed,
		Message:    "logout failed",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewPasswordResetFailed(message string) error {
	return NewDomainError(CodePasswordResetFailed, message, http.StatusBadRequest, nil)
}

func NewTimeout() error {
	return NewDomainError(CodeTimeout, "request timed out", http.StatusGatewayTimeout, nil)
}

func NewUnknown(err error) error {
	return &DomainError{
		Code:       CodeUnknownError,
		Message:    "something went wrong, please try again",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewNotFound(resource string, details map[string]any) error {
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict, details)
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

// CodeOf extracts the taxonomy code from an error, or UNKNOWN_ERROR.
func CodeOf(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeUnknownError
}

// WithRedirect returns a copy of the error carrying the given redirect target.
// Non-domain errors are wrapped as UNKNOWN_ERROR first.
func WithRedirect(err error, redirect string) error {
	domainErr := ToDomainError(err)
	clone := *domainErr
	clone.Redirect = redirect
	return &clone
}

// ToDomainError converts generic errors to DomainError. The raw cause is kept
// for server-side logging only; callers never see provider or database text.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			de.Err = err
			return de
		}
	}
	return &DomainError{
		Code:       CodeUnknownError,
		Message:    "something went wrong, please try again",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// MapError converts generic errors to the shared taxonomy.
func MapError(err error) error {
	return ToDomainError(err)
}
