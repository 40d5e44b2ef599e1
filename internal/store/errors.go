package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when creating a user fails because
	// another account already owns the email address.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least
	// one user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrPendingRegistrationNotFound is returned when no in-flight signup
	// row exists for the given email.
	ErrPendingRegistrationNotFound = errors.New("pending registration was not found")

	// ErrPasswordResetNotFound is returned when no in-flight reset row
	// exists for the given email.
	ErrPasswordResetNotFound = errors.New("password reset was not found")

	// ErrRefreshTokenNotFound is returned when a refresh token value is
	// absent from the store or already past its stored expiry. Rotation
	// treats both identically: the presented token is unusable.
	ErrRefreshTokenNotFound = errors.New("refresh token was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain
// logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open
	// transaction fails. The transaction is considered rolled back.
	ErrCommitingTransaction = errors.New("failed to commit transaction")
)
