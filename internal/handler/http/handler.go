// Package http implements the HTTP transport layer of the identity core.
// It provides the auth gateway middleware (authentication, authorization,
// ownership checks, per-user rate limiting), tracing and request logging,
// and the REST handlers for registration, login, session and password-reset
// flows. Requests are verified here and forwarded to the service layer.
package http

import (
	"github.com/tmaksat/newsauth/internal/logger"
	"github.com/tmaksat/newsauth/internal/rate"
	"github.com/tmaksat/newsauth/internal/service"
)

type Handler struct {
	services *service.Services
	limiter  *rate.Limiter

	logger *logger.Logger
}

func NewHandler(services *service.Services, limiter *rate.Limiter, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		limiter:  limiter,
		logger:   logger,
	}
}
