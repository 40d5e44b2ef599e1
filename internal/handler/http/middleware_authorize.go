package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tmaksat/newsauth/internal/app"
	"github.com/tmaksat/newsauth/internal/logger"
	"github.com/tmaksat/newsauth/internal/utils"
	"github.com/tmaksat/newsauth/models"
)

// Authorize allows the request only when the authenticated caller's role is
// in the allowed set. Must be mounted behind [Handler.Authenticate].
//
// Role is carried by the user loaded from storage on this very request, so
// a role change applies immediately, without waiting for token expiry.
func (h *Handler) Authorize(allowed ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := utils.GetCurrentUserFromContext(r.Context())
			if !ok {
				writeKind(w, r, KindUnauthenticated, app.MsgAuthenticationRequired, http.StatusUnauthorized)
				return
			}

			if !user.Role.OneOf(allowed...) {
				logger.FromRequest(r).Warn().
					Int64("userID", user.UserID).
					Str("role", user.Role.String()).
					Msg("role not allowed")
				writeKind(w, r, KindForbidden, app.MsgInsufficientRole, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CheckOwnership guards resource routes whose URL parameter names the
// owning user id. ADMIN passes unconditionally, AD_MANAGER passes for
// content-ownership checks, everyone else must own the resource: the id in
// the URL must equal the caller's own id.
func (h *Handler) CheckOwnership(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := utils.GetCurrentUserFromContext(r.Context())
			if !ok {
				writeKind(w, r, KindUnauthenticated, app.MsgAuthenticationRequired, http.StatusUnauthorized)
				return
			}

			if user.Role.OneOf(models.RoleAdmin, models.RoleAdManager) {
				next.ServeHTTP(w, r)
				return
			}

			if chi.URLParam(r, param) != user.StringID() {
				logger.FromRequest(r).Warn().
					Int64("userID", user.UserID).
					Str("param", param).
					Msg("ownership check failed")
				writeKind(w, r, KindForbidden, app.MsgNotResourceOwner, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
