package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail         = errors.New("invalid email address")
	ErrEmptyFullName        = errors.New("full name is required")
	ErrEmptyPassword        = errors.New("password is required")
	ErrWeakPassword         = errors.New("password must be at least 8 characters")
	ErrEmptyOTP             = errors.New("verification code is required")
	ErrEmptyRefreshToken    = errors.New("refresh token is required")
	ErrEmptyCurrentPassword = errors.New("current password is required")
)
