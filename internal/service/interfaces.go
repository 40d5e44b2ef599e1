package service

import (
	"context"

	"github.com/tmaksat/newsauth/models"
)

// TokenIssuer signs and verifies the dual access/refresh token pair.
// Satisfied by [*token.Issuer]; kept as an interface so service tests can
// substitute a deterministic issuer.
type TokenIssuer interface {
	// IssuePair produces a fresh signed access/refresh pair for userID.
	IssuePair(userID int64) (models.TokenPair, error)

	// ParseAccess verifies an access token and returns the user id it
	// carries. Returns token.ErrTokenExpired / token.ErrTokenInvalid.
	ParseAccess(tokenString string) (int64, error)

	// ParseRefresh verifies a refresh token and returns the user id it
	// carries. Error contract matches ParseAccess.
	ParseRefresh(tokenString string) (int64, error)
}

// RegistrationService drives the OTP-gated signup flow:
// NONE → PENDING → VERIFIED (user created), with PENDING able to self-loop
// via resend.
type RegistrationService interface {
	// RequestOTP starts (or restarts) a signup for the email. A repeated
	// request overwrites the prior pending attempt, invalidating its code.
	// Returns [ErrAlreadyRegistered] if an account already owns the email.
	RequestOTP(ctx context.Context, email, fullName, password string) error

	// VerifyOTP checks the code and, on success, converts the pending row
	// into a real user and issues the first session.
	// Returns store.ErrPendingRegistrationNotFound, [ErrOTPExpired],
	// [ErrOTPAttemptsExceeded], [ErrOTPInvalid] or [ErrAlreadyRegistered].
	VerifyOTP(ctx context.Context, email, code string) (models.User, models.TokenPair, error)

	// ResendOTP regenerates the code for an existing pending signup and
	// resets the attempt counter.
	ResendOTP(ctx context.Context, email string) error
}

// SessionService owns credential login and the whole session lifecycle:
// issuance, rotation-on-use, revocation and request-time verification.
type SessionService interface {
	// Login authenticates credentials and issues a fresh session.
	// Unknown email and wrong password are indistinguishable:
	// both return [ErrInvalidCredentials].
	Login(ctx context.Context, email, password string) (models.User, models.TokenPair, error)

	// Refresh rotates the presented refresh token for a new pair. The
	// presented token becomes permanently unusable whether or not the
	// caller ever sees the new pair.
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)

	// Logout ends the caller's session. When refreshToken is non-empty only
	// that token is required to die; the configured default additionally
	// removes the caller's whole session set.
	Logout(ctx context.Context, userID int64, refreshToken string) error

	// LogoutAll unconditionally revokes every session of the user and
	// reports how many tokens were removed.
	LogoutAll(ctx context.Context, userID int64) (int64, error)

	// CurrentUser loads the caller's account record.
	CurrentUser(ctx context.Context, userID int64) (models.User, error)

	// ChangePassword verifies the current password, rewrites the hash and
	// revokes every session of the user (forced re-login).
	ChangePassword(ctx context.Context, userID int64, current, newPassword string) error

	// Authenticate verifies a bearer access token and loads the live user
	// for the request context. Role is re-read from storage on every call,
	// so role changes and deactivation take effect immediately.
	Authenticate(ctx context.Context, accessToken string) (models.User, error)
}

// PasswordResetService drives the OTP-gated reset flow:
// NONE → REQUESTED → VERIFIED → (password rewritten, row deleted).
type PasswordResetService interface {
	// RequestReset starts a reset for the email. Always returns success for
	// unknown or inactive accounts so callers cannot enumerate emails; a
	// code is only actually dispatched for an active account.
	RequestReset(ctx context.Context, email string) error

	// VerifyOTP checks the code and flips the verified flag gating the
	// final reset call. The row stays in place.
	VerifyOTP(ctx context.Context, email, code string) error

	// ResetPassword rewrites the password of a verified, unexpired reset,
	// deletes the row and revokes every session of the user.
	// Returns [ErrResetNotVerified] when the OTP step was skipped.
	ResetPassword(ctx context.Context, email, newPassword string) error
}
