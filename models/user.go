package models

import (
	"strconv"
	"time"
)

// User represents an account entity used for authentication and authorization.
// It is the identity of record: created only when a pending registration is
// verified, never deleted by the auth core.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Email is the unique, case-normalized account identifier.
	// All lookups lowercase the value before touching the persistence layer.
	Email string `json:"email"`

	// FullName is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	FullName string `json:"full_name"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// Never serialized and never returned to callers.
	PasswordHash string `json:"-"`

	// Role is the authorization role of the account.
	Role Role `json:"role"`

	// IsActive marks whether the account may authenticate.
	// Disabled accounts fail login, refresh and request-time verification.
	IsActive bool `json:"is_active"`

	// LastLogin is the timestamp of the most recent successful login.
	// Nil until the user logs in for the first time.
	LastLogin *time.Time `json:"last_login,omitempty"`

	// CreatedAt is the timestamp when the user account was created.
	// Used for auditing and lifecycle management.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// StringID returns the decimal form of the user id, as it appears in URL
// parameters and token subjects.
func (u User) StringID() string {
	return strconv.FormatInt(u.UserID, 10)
}
