package token

import "errors"

// Verification failures are collapsed to two sentinels so callers never
// inspect low-level JWT errors. Expiry is kept distinct from every other
// failure: an expired access token means "refresh", an invalid one means
// "re-login".
var (
	// ErrTokenExpired is returned when a structurally valid token is past
	// its exp claim.
	ErrTokenExpired = errors.New("token is expired")

	// ErrTokenInvalid is returned for every other verification failure:
	// bad signature, wrong issuer, malformed payload, wrong algorithm.
	ErrTokenInvalid = errors.New("token is invalid")
)
