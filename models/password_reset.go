package models

import "time"

// PasswordReset mirrors [PendingRegistration] for the password-reset flow,
// with an added Verified flag that gates the final reset call. The row is
// single-use: it is deleted the moment the password is actually rewritten.
type PasswordReset struct {
	// Email is the unique key of the in-flight reset, case-normalized.
	Email string `json:"email"`

	// OTP is the numeric one-time passcode dispatched to the email address.
	OTP string `json:"-"`

	// OTPExpiresAt is the deadline after which verification fails regardless
	// of code correctness.
	OTPExpiresAt time.Time `json:"otp_expires_at"`

	// Attempts counts failed verifications since the last request.
	Attempts int `json:"attempts"`

	// Verified flips true only after a correct OTP was presented before
	// expiry. The final reset call is refused while it is false, so OTP
	// possession cannot be skipped.
	Verified bool `json:"verified"`

	// CreatedAt is the timestamp of the original reset request.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the PasswordReset model.
func (p PasswordReset) TableName() string {
	return "password_resets"
}
