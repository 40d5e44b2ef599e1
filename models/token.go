package models

import "time"

// TokenPair carries one freshly issued session: a short-lived signed access
// token and a longer-lived signed refresh token. The refresh token is also
// persisted server-side (see [RefreshToken]) and is single-use.
type TokenPair struct {
	// AccessToken is the compact JWS string sent with each request.
	AccessToken string `json:"access_token"`

	// RefreshToken is the compact JWS string exchanged for a fresh pair.
	RefreshToken string `json:"refresh_token"`

	// RefreshExpiresAt is the server-side expiry of the refresh token.
	// Internal bookkeeping; not part of the wire response.
	RefreshExpiresAt time.Time `json:"-"`
}
