package service

import (
	"github.com/tmaksat/newsauth/internal/config"
	"github.com/tmaksat/newsauth/internal/logger"
	"github.com/tmaksat/newsauth/internal/notify"
	"github.com/tmaksat/newsauth/internal/store"
)

// Services aggregates the business-logic layer consumed by the HTTP
// handlers.
type Services struct {
	RegistrationService  RegistrationService
	SessionService       SessionService
	PasswordResetService PasswordResetService
}

// NewServices wires all services to the repositories, the token issuer and
// the outbound notifier.
func NewServices(repos *store.Repositories, issuer TokenIssuer, notifier notify.Notifier, cfg config.Auth, logger *logger.Logger) *Services {
	return &Services{
		RegistrationService:  NewRegistrationService(repos, issuer, notifier, cfg, logger),
		SessionService:       NewSessionService(repos, issuer, cfg, logger),
		PasswordResetService: NewPasswordResetService(repos, notifier, cfg, logger),
	}
}
