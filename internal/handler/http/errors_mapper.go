package http

import (
	"errors"
	"net/http"

	"github.com/tmaksat/newsauth/internal/logger"
	"github.com/tmaksat/newsauth/internal/service"
	"github.com/tmaksat/newsauth/internal/store"
	"github.com/tmaksat/newsauth/internal/utils"
	"github.com/tmaksat/newsauth/models"
)

// Stable machine-readable error kinds of the wire contract. Clients branch
// on the kind; the message is for humans only.
const (
	KindValidation             = "VALIDATION"
	KindNotFound               = "NOT_FOUND"
	KindExpired                = "EXPIRED"
	KindAttemptsExceeded       = "ATTEMPTS_EXCEEDED"
	KindInvalidOTP             = "INVALID_OTP"
	KindInvalidCredentials     = "INVALID_CREDENTIALS"
	KindInvalidCurrentPassword = "INVALID_CURRENT_PASSWORD"
	KindAccountDisabled        = "ACCOUNT_DISABLED"
	KindAlreadyExists          = "ALREADY_EXISTS"
	KindNotVerified            = "NOT_VERIFIED"
	KindUnauthenticated        = "UNAUTHENTICATED"
	KindTokenExpired           = "TOKEN_EXPIRED"
	KindInvalidOrExpired       = "INVALID_OR_EXPIRED"
	KindForbidden              = "FORBIDDEN"
	KindTooManyRequests        = "TOO_MANY_REQUESTS"
	KindInternal               = "INTERNAL"
)

type errorMapping struct {
	kind   string
	status int
}

// errorKindMap binds each expected, recoverable-by-the-caller error to its
// stable kind and HTTP status. Anything unmapped is an infrastructure
// failure: logged in full, surfaced as a generic 500 without internals.
var errorKindMap = map[error]errorMapping{
	service.ErrInvalidDataProvided:    {KindValidation, http.StatusBadRequest},
	service.ErrAlreadyRegistered:      {KindAlreadyExists, http.StatusConflict},
	service.ErrOTPExpired:             {KindExpired, http.StatusBadRequest},
	service.ErrOTPInvalid:             {KindInvalidOTP, http.StatusBadRequest},
	service.ErrOTPAttemptsExceeded:    {KindAttemptsExceeded, http.StatusTooManyRequests},
	service.ErrInvalidCredentials:     {KindInvalidCredentials, http.StatusUnauthorized},
	service.ErrAccountDisabled:        {KindAccountDisabled, http.StatusForbidden},
	service.ErrInvalidCurrentPassword: {KindInvalidCurrentPassword, http.StatusBadRequest},
	service.ErrResetNotVerified:       {KindNotVerified, http.StatusForbidden},
	service.ErrTokenIsExpired:         {KindTokenExpired, http.StatusUnauthorized},
	service.ErrInvalidRefreshToken:    {KindInvalidOrExpired, http.StatusUnauthorized},
	service.ErrInvalidAccessToken:     {KindUnauthenticated, http.StatusUnauthorized},

	store.ErrEmailAlreadyExists:          {KindAlreadyExists, http.StatusConflict},
	store.ErrNoUserWasFound:              {KindNotFound, http.StatusNotFound},
	store.ErrPendingRegistrationNotFound: {KindNotFound, http.StatusNotFound},
	store.ErrPasswordResetNotFound:       {KindNotFound, http.StatusNotFound},
	store.ErrRefreshTokenNotFound:        {KindInvalidOrExpired, http.StatusUnauthorized},
}

func mappingFromError(err error) (errorMapping, bool) {
	for target, mapping := range errorKindMap {
		if errors.Is(err, target) {
			return mapping, true
		}
	}
	return errorMapping{KindInternal, http.StatusInternalServerError}, false
}

// writeError renders err as the error envelope. Expected errors keep their
// own message; unexpected ones are logged and replaced with a generic body
// so internals never leak to the caller.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	mapping, expected := mappingFromError(err)
	message := err.Error()
	if !expected {
		log.Err(err).Msg("unexpected error")
		message = http.StatusText(http.StatusInternalServerError)
	}

	body := models.ErrorResponse{Error: models.ErrorBody{
		Kind:    mapping.kind,
		Message: message,
	}}
	if _, werr := utils.WriteJSON(w, body, mapping.status); werr != nil {
		log.Err(werr).Msg("writing error response failed")
	}
}

// writeKind renders a fixed kind/status pair with a custom message. Used by
// middleware that rejects before any service error exists.
func writeKind(w http.ResponseWriter, r *http.Request, kind, message string, status int) {
	body := models.ErrorResponse{Error: models.ErrorBody{
		Kind:    kind,
		Message: message,
	}}
	if _, err := utils.WriteJSON(w, body, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("writing error response failed")
	}
}
