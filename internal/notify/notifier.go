// Package notify defines the outbound one-time-passcode delivery port and
// its implementations. The identity core never talks to a mail provider
// directly; it hands a destination and a code to a [Notifier].
package notify

import (
	"context"

	"github.com/tmaksat/newsauth/internal/config"
	"github.com/tmaksat/newsauth/internal/logger"
)

// Purpose labels which flow a passcode belongs to, so delivery templates
// can differ between registration and password reset.
type Purpose string

const (
	// PurposeRegistration marks codes confirming a new account's email.
	PurposeRegistration Purpose = "registration"

	// PurposePasswordReset marks codes authorizing a password reset.
	PurposePasswordReset Purpose = "password_reset"
)

// Notifier dispatches a one-time passcode to a destination address.
// Implementations must be safe for concurrent use.
type Notifier interface {
	SendOTP(ctx context.Context, email, code string, purpose Purpose) error
}

// New selects a [Notifier] implementation from configuration: Mailgun when
// the domain and API key are configured, otherwise the log-only notifier
// used in development.
func New(cfg config.Notifier, log *logger.Logger) Notifier {
	if cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" {
		return NewMailgunNotifier(cfg, log)
	}

	log.Warn().Msg("mailgun is not configured, falling back to log notifier")
	return NewLogNotifier(log)
}
