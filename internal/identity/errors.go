package identity

import (
	"net/http"
	"strings"

	"github.com/glowmart/storefront-service/pkg/util"
)

// Provider failure messages stay free text, matching the hosted identity
// services this application has been pointed at, which expose no stable
// machine codes. The local provider emits the same strings.
const (
	msgInvalidCredentials = "invalid login credentials"
	msgEmailNotConfirmed  = "email not confirmed"
	msgRateLimited        = "over request rate limit"
	msgSessionExpired     = "session expired"
	msgSessionInvalid     = "session invalid or signed out"
	msgAlreadyRegistered  = "user already registered"
	msgTokenInvalid       = "token expired or invalid"
)

// TranslateError maps a free-text provider error onto the closed internal
// taxonomy. This is the single place that interprets provider text; if a
// provider ever exposes stable codes, only this function changes. The raw
// error is preserved for server-side logging and never shown to callers.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, msgInvalidCredentials):
		return util.NewInvalidCredentials("invalid email or password")
	case strings.Contains(msg, msgEmailNotConfirmed):
		return util.NewAccountNotConfirmed("please confirm your email address before signing in")
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "too many requests"):
		return &util.DomainError{
			Code:       util.CodeUnknownError,
			Message:    "too many attempts, please try again shortly",
			HTTPStatus: http.StatusTooManyRequests,
			Err:        err,
		}
	case strings.Contains(msg, msgSessionExpired):
		return util.NewSessionExpired()
	case strings.Contains(msg, "session"):
		return util.NewSessionInvalid("")
	case strings.Contains(msg, "already registered"):
		return util.NewSignupFailed("an account with this email already exists")
	case strings.Contains(msg, "token"):
		return util.NewAccountNotConfirmed("link is invalid or has expired")
	default:
		return util.NewUnknown(err)
	}
}
