package notify

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/tmaksat/newsauth/internal/config"
	"github.com/tmaksat/newsauth/internal/logger"
)

// MailgunNotifier delivers passcodes by email through the Mailgun API.
type MailgunNotifier struct {
	mg     *mailgun.MailgunImpl
	sender string
	logger *logger.Logger
}

// NewMailgunNotifier constructs a [MailgunNotifier] from configuration.
func NewMailgunNotifier(cfg config.Notifier, log *logger.Logger) *MailgunNotifier {
	log.Debug().Str("domain", cfg.MailgunDomain).Msg("creating mailgun notifier")
	return &MailgunNotifier{
		mg:     mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey),
		sender: cfg.Sender,
		logger: log,
	}
}

// SendOTP sends the passcode email and returns a wrapped error if the
// Mailgun API call fails. The code itself is never logged.
func (n *MailgunNotifier) SendOTP(ctx context.Context, email, code string, purpose Purpose) error {
	log := logger.FromContext(ctx)

	subject, body := composeOTPMessage(code, purpose)
	message := n.mg.NewMessage(n.sender, subject, body, email)

	_, id, err := n.mg.Send(ctx, message)
	if err != nil {
		log.Err(err).Str("purpose", string(purpose)).Msg("error sending otp email")
		return fmt.Errorf("error sending otp email: %w", err)
	}

	log.Debug().Str("message_id", id).Str("purpose", string(purpose)).Msg("otp email queued")
	return nil
}

func composeOTPMessage(code string, purpose Purpose) (subject, body string) {
	switch purpose {
	case PurposePasswordReset:
		subject = "Your password reset code"
		body = fmt.Sprintf("Use the code %s to reset your password. The code expires shortly; if you did not request a reset, ignore this message.", code)
	default:
		subject = "Your registration code"
		body = fmt.Sprintf("Use the code %s to confirm your registration. The code expires shortly.", code)
	}
	return subject, body
}
