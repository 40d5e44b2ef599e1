// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Maksat Tulegenov

package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmaksat/newsauth/models"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Email:    "john@example.com",
		FullName: "John Doe",
		Password: "Passw0rd!",
	}
}

// ---------------------------------------------------------------------------
// TestNewCredentialsValidator
// ---------------------------------------------------------------------------

func TestNewCredentialsValidator(t *testing.T) {
	v := NewCredentialsValidator()
	require.NotNil(t, v)
}

// ---------------------------------------------------------------------------
// TestValidate_Dispatch
// ---------------------------------------------------------------------------

func TestValidate_Dispatch(t *testing.T) {
	v := NewCredentialsValidator()
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		err := v.Validate(ctx, 42)
		require.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("RegisterRequest value", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, validRegisterRequest()))
	})

	t.Run("RegisterRequest pointer", func(t *testing.T) {
		req := validRegisterRequest()
		require.NoError(t, v.Validate(ctx, &req))
	})
}

// ---------------------------------------------------------------------------
// TestValidate_RegisterRequest
// ---------------------------------------------------------------------------

func TestValidate_RegisterRequest(t *testing.T) {
	v := NewCredentialsValidator()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*models.RegisterRequest)
		err    error
	}{
		{"valid", func(_ *models.RegisterRequest) {}, nil},
		{"empty email", func(r *models.RegisterRequest) { r.Email = "" }, ErrInvalidEmail},
		{"email without at-sign", func(r *models.RegisterRequest) { r.Email = "john.example.com" }, ErrInvalidEmail},
		{"email with display name", func(r *models.RegisterRequest) { r.Email = "John <john@example.com>" }, ErrInvalidEmail},
		{"blank full name", func(r *models.RegisterRequest) { r.FullName = "   " }, ErrEmptyFullName},
		{"short password", func(r *models.RegisterRequest) { r.Password = "short" }, ErrWeakPassword},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRegisterRequest()
			tc.mutate(&req)

			err := v.Validate(ctx, req)
			if tc.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidate_FieldScoping
// ---------------------------------------------------------------------------

func TestValidate_FieldScoping(t *testing.T) {
	v := NewCredentialsValidator()
	ctx := context.Background()

	t.Run("scoped to email skips weak password", func(t *testing.T) {
		req := validRegisterRequest()
		req.Password = "short"

		require.NoError(t, v.Validate(ctx, req, FieldEmail))
	})

	t.Run("unknown field", func(t *testing.T) {
		err := v.Validate(ctx, validRegisterRequest(), "no_such_field")
		require.ErrorIs(t, err, ErrUnknownField)
	})
}

// ---------------------------------------------------------------------------
// TestValidate_LoginRequest
// ---------------------------------------------------------------------------

func TestValidate_LoginRequest(t *testing.T) {
	v := NewCredentialsValidator()
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, models.LoginRequest{Email: "john@example.com", Password: "x"}))
	})

	// Login never judges email format; a malformed address simply fails
	// the credential check downstream.
	t.Run("malformed email passes presence check", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, models.LoginRequest{Email: "not-an-email", Password: "x"}))
	})

	t.Run("empty email", func(t *testing.T) {
		err := v.Validate(ctx, models.LoginRequest{Password: "x"})
		require.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("empty password", func(t *testing.T) {
		err := v.Validate(ctx, models.LoginRequest{Email: "john@example.com"})
		require.ErrorIs(t, err, ErrEmptyPassword)
	})
}

// ---------------------------------------------------------------------------
// TestValidate_OTPAndResetRequests
// ---------------------------------------------------------------------------

func TestValidate_OTPAndResetRequests(t *testing.T) {
	v := NewCredentialsValidator()
	ctx := context.Background()

	t.Run("verify request without code", func(t *testing.T) {
		err := v.Validate(ctx, models.VerifyOTPRequest{Email: "john@example.com"})
		require.ErrorIs(t, err, ErrEmptyOTP)
	})

	t.Run("email request", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, models.EmailRequest{Email: "john@example.com"}))
		require.ErrorIs(t, v.Validate(ctx, models.EmailRequest{}), ErrInvalidEmail)
	})

	t.Run("refresh request", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, models.RefreshRequest{RefreshToken: "opaque"}))
		require.ErrorIs(t, v.Validate(ctx, models.RefreshRequest{}), ErrEmptyRefreshToken)
	})

	t.Run("change password request", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, models.ChangePasswordRequest{CurrentPassword: "old", NewPassword: "NewPassw0rd"}))
		require.ErrorIs(t, v.Validate(ctx, models.ChangePasswordRequest{NewPassword: "NewPassw0rd"}), ErrEmptyCurrentPassword)
		require.ErrorIs(t, v.Validate(ctx, models.ChangePasswordRequest{CurrentPassword: "old", NewPassword: "weak"}), ErrWeakPassword)
	})

	t.Run("reset password request", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, models.ResetPasswordRequest{Email: "john@example.com", NewPassword: "NewPassw0rd"}))
		require.ErrorIs(t, v.Validate(ctx, models.ResetPasswordRequest{Email: "", NewPassword: "NewPassw0rd"}), ErrInvalidEmail)
		require.ErrorIs(t, v.Validate(ctx, models.ResetPasswordRequest{Email: "john@example.com", NewPassword: "weak"}), ErrWeakPassword)
	})
}
