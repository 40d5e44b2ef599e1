package store

import (
	"context"
	"time"

	"github.com/tmaksat/newsauth/models"
)

// UserRepository is the data-access contract for the identity of record.
type UserRepository interface {
	// CreateFromPending atomically converts an in-flight signup into a real
	// user and removes the pending row. Returns [ErrEmailAlreadyExists] if
	// a concurrent registration won the race for the email.
	CreateFromPending(ctx context.Context, pending models.PendingRegistration, role models.Role) (models.User, error)

	// FindByEmail looks a user up by case-normalized email.
	// Returns [ErrNoUserWasFound] on an empty result.
	FindByEmail(ctx context.Context, email string) (models.User, error)

	// FindByID looks a user up by primary key.
	// Returns [ErrNoUserWasFound] on an empty result.
	FindByID(ctx context.Context, userID int64) (models.User, error)

	// UpdateLastLogin stamps the user's last successful login.
	UpdateLastLogin(ctx context.Context, userID int64) error

	// UpdatePasswordHash rewrites the stored credential hash.
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error
}

// PendingRegistrationRepository is the ledger of in-flight signups.
type PendingRegistrationRepository interface {
	// Upsert creates or overwrites the row for the email, resetting the
	// attempt counter (last-request-wins).
	Upsert(ctx context.Context, pending models.PendingRegistration) error

	// FindByEmail returns the in-flight signup for the email.
	// Returns [ErrPendingRegistrationNotFound] on an empty result.
	FindByEmail(ctx context.Context, email string) (models.PendingRegistration, error)

	// IncrementAttempts atomically bumps the failed-verification counter
	// and returns the new value, so concurrent verifies never lose
	// increments.
	IncrementAttempts(ctx context.Context, email string) (int, error)

	// RefreshOTP replaces the code and expiry and resets attempts (resend).
	// Returns [ErrPendingRegistrationNotFound] if no row exists.
	RefreshOTP(ctx context.Context, email, code string, expiresAt time.Time) error

	// Delete removes the row for the email.
	Delete(ctx context.Context, email string) error

	// DeleteStale removes rows created before the cutoff and reports how
	// many were dropped. Used by the background sweeper.
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// PasswordResetRepository is the ledger of in-flight password resets.
type PasswordResetRepository interface {
	// Upsert creates or overwrites the row for the email, resetting
	// attempts and the verified flag (last-request-wins).
	Upsert(ctx context.Context, reset models.PasswordReset) error

	// FindByEmail returns the in-flight reset for the email.
	// Returns [ErrPasswordResetNotFound] on an empty result.
	FindByEmail(ctx context.Context, email string) (models.PasswordReset, error)

	// IncrementAttempts atomically bumps the failed-verification counter
	// and returns the new value.
	IncrementAttempts(ctx context.Context, email string) (int, error)

	// MarkVerified flips the gating flag after a correct code was
	// presented before expiry. The row stays in place for the final reset
	// call.
	MarkVerified(ctx context.Context, email string) error

	// Delete removes the row for the email.
	Delete(ctx context.Context, email string) error

	// DeleteStale removes rows created before the cutoff and reports how
	// many were dropped. Used by the background sweeper.
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}

// RefreshTokenRepository persists live session handles.
type RefreshTokenRepository interface {
	// Insert stores a freshly issued refresh token.
	Insert(ctx context.Context, refreshToken models.RefreshToken) error

	// Rotate atomically consumes the presented token value and stores the
	// replacement in one transaction. Returns the owning user id, or
	// [ErrRefreshTokenNotFound] when the value is absent, expired, or was
	// already consumed by a concurrent rotation. An expired row is deleted
	// as part of the failed rotation.
	Rotate(ctx context.Context, presented string, replacement models.RefreshToken) (int64, error)

	// Delete removes a single token value.
	Delete(ctx context.Context, tokenValue string) error

	// DeleteAllForUser removes every token of the user and reports how many
	// rows were dropped. Used by logout-all and credential changes.
	DeleteAllForUser(ctx context.Context, userID int64) (int64, error)

	// DeleteExpired removes rows past their stored expiry and reports how
	// many were dropped. Used by the background sweeper.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
