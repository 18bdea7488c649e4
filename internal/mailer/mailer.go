package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/glowmart/storefront-service/internal/config"
	"github.com/glowmart/storefront-service/internal/events"
)

// Mailer sends transactional email over SMTP. An empty host disables
// delivery: messages are logged and dropped, which keeps local development
// working without a mail server.
type Mailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

// New builds the mailer.
func New(cfg config.SMTPConfig, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

// RegisterHandlers subscribes the mailer to identity events. Send failures
// are logged and never propagated; mail is best effort.
func (m *Mailer) RegisterHandlers(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventAccountSignedUp, m.handleAccountSignedUp)
	dispatcher.Subscribe(events.EventPasswordResetRequested, m.handlePasswordResetRequested)
}

func (m *Mailer) handleAccountSignedUp(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AccountSignedUpPayload)
	if !ok {
		m.logger.Warn("unexpected payload type", zap.String("event_type", string(event.Type)))
		return nil
	}
	if !payload.RequiresConfirmation {
		return nil
	}

	body := fmt.Sprintf(
		"Hi %s,\n\nWelcome to GlowMart. Please confirm your email address by opening the link below:\n\n%s\n\nIf you did not create this account you can ignore this message.\n",
		payload.FullName, payload.ConfirmationURL,
	)
	m.send(event.Email, "Confirm your GlowMart account", body)
	return nil
}

func (m *Mailer) handlePasswordResetRequested(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordResetRequestedPayload)
	if !ok {
		m.logger.Warn("unexpected payload type", zap.String("event_type", string(event.Type)))
		return nil
	}

	body := fmt.Sprintf(
		"A password reset was requested for your GlowMart account.\n\nOpen the link below to choose a new password:\n\n%s\n\nIf you did not request this you can ignore this message.\n",
		payload.ResetURL,
	)
	m.send(event.Email, "Reset your GlowMart password", body)
	return nil
}

func (m *Mailer) send(to, subject, body string) {
	if m.cfg.Host == "" {
		m.logger.Info("mail delivery disabled, dropping message",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		m.logger.Error("invalid sender address", zap.String("from", m.cfg.From), zap.Error(err))
		return
	}
	if err := msg.To(to); err != nil {
		m.logger.Error("invalid recipient address", zap.String("to", to), zap.Error(err))
		return
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(m.cfg.Host,
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		m.logger.Error("smtp client setup failed", zap.Error(err))
		return
	}

	if err := client.DialAndSend(msg); err != nil {
		m.logger.Error("mail delivery failed", zap.String("to", to), zap.Error(err))
		return
	}
	m.logger.Info("mail sent", zap.String("to", to), zap.String("subject", subject))
}
