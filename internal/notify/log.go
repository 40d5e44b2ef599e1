package notify

import (
	"context"

	"github.com/tmaksat/newsauth/internal/logger"
)

// LogNotifier writes passcodes to the log instead of delivering them.
// Development and test use only; never deploy it against real traffic.
type LogNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier constructs a [LogNotifier].
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

// SendOTP logs the dispatch and always succeeds.
func (n *LogNotifier) SendOTP(ctx context.Context, email, code string, purpose Purpose) error {
	n.logger.Info().
		Str("email", email).
		Str("otp", code).
		Str("purpose", string(purpose)).
		Msg("otp dispatched via log notifier")
	return nil
}
