package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/api/health", h.health)

	// routes without authentication
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register/request", h.requestRegistrationOTP)
		r.Post("/api/auth/register/verify", h.verifyRegistrationOTP)
		r.Post("/api/auth/register/resend", h.resendRegistrationOTP)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/refresh", h.refresh)
		r.Post("/api/auth/password-reset/request", h.requestPasswordReset)
		r.Post("/api/auth/password-reset/verify", h.verifyPasswordResetOTP)
		r.Post("/api/auth/password-reset/reset", h.resetPassword)
	})

	// routes behind the auth gateway
	router.Group(func(r chi.Router) {
		r.Use(h.Authenticate)
		r.Use(h.RateLimit)

		r.Post("/api/auth/logout", h.logout)
		r.Post("/api/auth/logout-all", h.logoutAll)
		r.Get("/api/auth/me", h.currentUser)
		r.Post("/api/auth/password", h.changePassword)
	})

	return router
}
