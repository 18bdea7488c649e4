package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountSignedUp        EventType = "account_signed_up"
	EventPasswordResetRequested EventType = "password_reset_requested"
)

// Event represents a domain event emitted by the identity layer.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	AccountID string      `json:"account_id"`
	Email     string      `json:"email"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AccountSignedUpPayload payload.
type AccountSignedUpPayload struct {
	FullName             string `json:"full_name"`
	ConfirmationURL      string `json:"confirmation_url,omitempty"`
	RequiresConfirmation bool   `json:"requires_confirmation"`
}

// PasswordResetRequestedPayload payload.
type PasswordResetRequestedPayload struct {
	ResetURL string `json:"reset_url"`
}
