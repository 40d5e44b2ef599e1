package models

import "time"

// PendingRegistration is a not-yet-real user: one row per in-flight signup,
// keyed by email. At most one pending registration exists per email — a new
// request for the same email overwrites the row and resets the attempt
// counter (last-request-wins policy). The row is destroyed when verification
// succeeds and the real [User] is created.
type PendingRegistration struct {
	// Email is the unique key of the in-flight signup, case-normalized.
	Email string `json:"email"`

	// FullName is carried over into the User record on verification.
	FullName string `json:"full_name"`

	// PasswordHash is the bcrypt hash computed at request time so that the
	// plaintext password never persists, even transiently.
	PasswordHash string `json:"-"`

	// OTP is the numeric one-time passcode dispatched to the email address.
	OTP string `json:"-"`

	// OTPExpiresAt is the deadline after which verification fails regardless
	// of code correctness. The row is left in place for a resend.
	OTPExpiresAt time.Time `json:"otp_expires_at"`

	// Attempts counts failed verifications since the last request or resend.
	Attempts int `json:"attempts"`

	// CreatedAt is the timestamp of the original request for this row.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the PendingRegistration model.
func (p PendingRegistration) TableName() string {
	return "pending_registrations"
}
