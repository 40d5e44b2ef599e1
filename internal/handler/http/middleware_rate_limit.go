package http

import (
	"net/http"

	"github.com/tmaksat/newsauth/internal/app"
	"github.com/tmaksat/newsauth/internal/logger"
	"github.com/tmaksat/newsauth/internal/utils"
)

// RateLimit applies the per-user sliding-window throttle. Must be mounted
// behind [Handler.Authenticate]: unauthenticated requests carry no user id
// and pass through untouched.
func (h *Handler) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := utils.GetCurrentUserFromContext(r.Context())
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		if !h.limiter.Allow(user.UserID) {
			logger.FromRequest(r).Warn().
				Int64("userID", user.UserID).
				Msg("rate limit exceeded")
			writeKind(w, r, KindTooManyRequests, app.MsgTooManyRequests, http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
