package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tmaksat/newsauth/internal/app"
	"github.com/tmaksat/newsauth/internal/logger"
	"github.com/tmaksat/newsauth/internal/service"
	"github.com/tmaksat/newsauth/internal/utils"
)

// Authenticate is the auth gateway: it requires a bearer access token,
// verifies it and loads the live user record into the request context under
// [utils.CurrentUserCtxKey].
//
// Rejections are 401 with a machine-readable kind:
//   - UNAUTHENTICATED — header absent or malformed, token invalid, user
//     unknown or deactivated;
//   - TOKEN_EXPIRED — token past its expiry, so clients know to call
//     refresh rather than re-login.
//
// Exported so out-of-scope controllers mount the same gateway.
func (h *Handler) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := bearerToken(r)
		if err != nil {
			log.Err(err).Send()
			writeKind(w, r, KindUnauthenticated, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		user, err := h.services.SessionService.Authenticate(ctx, tokenString)
		if err != nil {
			if errors.Is(err, service.ErrTokenIsExpired) {
				writeKind(w, r, KindTokenExpired, app.MsgAccessTokenExpired, http.StatusUnauthorized)
				return
			}
			log.Err(err).Msg("authentication failed")
			writeKind(w, r, KindUnauthenticated, app.MsgAuthenticationRequired, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithCurrentUser(ctx, user)))
	})
}

// OptionalAuth performs the same verification as [Handler.Authenticate] but
// never rejects: an invalid or missing token simply yields "no user" in the
// context. Used by public endpoints that personalize output when possible.
func (h *Handler) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := bearerToken(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		user, err := h.services.SessionService.Authenticate(ctx, tokenString)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithCurrentUser(ctx, user)))
	})
}

// bearerToken extracts the token string from the "Authorization" header.
//
// The header is expected to follow the standard format:
//
//	Authorization: Bearer <token>
//
// It returns the following sentinel errors:
//   - [ErrEmptyAuthorizationHeader] — the header is absent;
//   - [ErrInvalidAuthorizationHeader] — the header cannot be split into a
//     scheme and a token;
//   - [ErrEmptyToken] — the scheme is present but the token is empty.
func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}
