// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksat Tulegenov

// Package app contains shared application-layer constants used across the
// newsauth server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidJSON is returned when the request body cannot be decoded.
	MsgInvalidJSON = "invalid JSON was passed"

	// MsgAuthenticationRequired is returned when an endpoint requires an
	// authenticated caller but no valid access token was presented.
	MsgAuthenticationRequired = "authentication required"

	// MsgAccessTokenExpired is returned when a JWT bearer token is
	// syntactically valid but its expiry time has passed.
	MsgAccessTokenExpired = "access token expired"

	// MsgInsufficientRole is returned when the authenticated user's role is
	// not in the endpoint's allow-list.
	MsgInsufficientRole = "insufficient role"

	// MsgNotResourceOwner is returned when the authenticated user attempts
	// to access a resource that belongs to a different user.
	MsgNotResourceOwner = "not the resource owner"

	// MsgTooManyRequests is returned when the caller has exhausted the
	// sliding-window request budget.
	MsgTooManyRequests = "too many requests"

	// MsgVerificationCodeSent acknowledges that a registration code was
	// dispatched (or re-dispatched) to the given email.
	MsgVerificationCodeSent = "verification code sent"

	// MsgResetRequested acknowledges a password-reset request without
	// revealing whether the email is registered.
	MsgResetRequested = "if the email is registered, a reset code has been sent"

	// MsgCodeVerified acknowledges a correct reset code; the caller may now
	// submit the new password.
	MsgCodeVerified = "code verified"

	// MsgPasswordReset acknowledges a completed password reset.
	MsgPasswordReset = "password reset"

	// MsgPasswordChanged acknowledges a completed password change.
	MsgPasswordChanged = "password changed"

	// MsgLoggedOut acknowledges a completed logout.
	MsgLoggedOut = "logged out"

	// MsgAllSessionsTerminated acknowledges that every session of the caller
	// was revoked.
	MsgAllSessionsTerminated = "all sessions terminated"
)
