// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksat Tulegenov

// Package token implements the token issuer: a pure signer/verifier of the
// dual access/refresh JWT pair. Access and refresh tokens are signed with
// independent secrets so that a leaked access-token secret cannot forge
// refresh tokens. Payloads carry only the user id (sub), issuance and
// expiry timestamps, and a unique jti — never role or email, so role
// changes take effect without waiting for token expiry.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tmaksat/newsauth/internal/config"
	"github.com/tmaksat/newsauth/models"
)

// Issuer signs and verifies the access/refresh token pair.
// All state is read-only after construction; safe for concurrent use.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewIssuer constructs an [Issuer] from the auth configuration.
func NewIssuer(cfg config.Auth) *Issuer {
	return &Issuer{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		issuer:        cfg.TokenIssuer,
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}
}

// IssuePair produces a fresh signed access/refresh pair for userID.
// The refresh token carries a random jti, so two pairs issued within the
// same second still differ; the caller persists the refresh token by value.
func (i *Issuer) IssuePair(userID int64) (models.TokenPair, error) {
	now := time.Now()

	access, err := i.sign(userID, i.accessSecret, now, i.accessTTL)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("error signing access token: %w", err)
	}

	refresh, err := i.sign(userID, i.refreshSecret, now, i.refreshTTL)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("error signing refresh token: %w", err)
	}

	return models.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		RefreshExpiresAt: now.Add(i.refreshTTL),
	}, nil
}

// ParseAccess verifies an access token and returns the user id it carries.
// Returns [ErrTokenExpired] for an expired token and [ErrTokenInvalid] for
// every other verification failure, so callers can message the user
// appropriately (refresh vs. re-login).
func (i *Issuer) ParseAccess(tokenString string) (int64, error) {
	return i.parse(tokenString, i.accessSecret)
}

// ParseRefresh verifies a refresh token and returns the user id it carries.
// Error contract matches [Issuer.ParseAccess].
func (i *Issuer) ParseRefresh(tokenString string) (int64, error) {
	return i.parse(tokenString, i.refreshSecret)
}

func (i *Issuer) sign(userID int64, secret []byte, now time.Time, ttl time.Duration) (string, error) {
	claims := &jwt.RegisteredClaims{
		Issuer:    i.issuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (i *Issuer) parse(tokenString string, secret []byte) (int64, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithIssuer(i.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return 0, ErrTokenInvalid
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, ErrTokenInvalid
	}

	return userID, nil
}
