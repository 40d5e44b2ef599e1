package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrAlreadyRegistered = errors.New("email is already registered")

	ErrOTPExpired          = errors.New("one-time passcode is expired")
	ErrOTPInvalid          = errors.New("one-time passcode does not match")
	ErrOTPAttemptsExceeded = errors.New("one-time passcode attempts exceeded")

	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAccountDisabled        = errors.New("account is disabled")
	ErrInvalidCurrentPassword = errors.New("current password does not match")

	ErrResetNotVerified = errors.New("password reset is not verified")

	ErrTokenIsExpired      = errors.New("token is expired")
	ErrInvalidRefreshToken = errors.New("refresh token is invalid or expired")
	ErrInvalidAccessToken  = errors.New("access token is invalid")
)
