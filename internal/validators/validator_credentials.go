package validators

import (
	"context"
	"net/mail"
	"strings"

	"github.com/tmaksat/newsauth/models"
)

const (
	FieldEmail           = "email"
	FieldFullName        = "full_name"
	FieldPassword        = "password"
	FieldOTP             = "otp"
	FieldRefreshToken    = "refresh_token"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
)

// minPasswordLength is the smallest accepted plaintext password.
const minPasswordLength = 8

// CredentialsValidator validates the request bodies of the auth API:
// registration input, login credentials, OTP submissions and password
// changes.
type CredentialsValidator struct {
}

func NewCredentialsValidator() Validator {
	return &CredentialsValidator{}
}

func (v *CredentialsValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegisterRequest(ctx, value, fields...)
	case *models.RegisterRequest:
		return v.validateRegisterRequest(ctx, *value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(ctx, *value, fields...)

	case models.VerifyOTPRequest:
		return v.validateVerifyOTPRequest(ctx, value, fields...)
	case *models.VerifyOTPRequest:
		return v.validateVerifyOTPRequest(ctx, *value, fields...)

	case models.EmailRequest:
		return v.validateEmailRequest(ctx, value, fields...)
	case *models.EmailRequest:
		return v.validateEmailRequest(ctx, *value, fields...)

	case models.RefreshRequest:
		return v.validateRefreshRequest(ctx, value, fields...)
	case *models.RefreshRequest:
		return v.validateRefreshRequest(ctx, *value, fields...)

	case models.ChangePasswordRequest:
		return v.validateChangePasswordRequest(ctx, value, fields...)
	case *models.ChangePasswordRequest:
		return v.validateChangePasswordRequest(ctx, *value, fields...)

	case models.ResetPasswordRequest:
		return v.validateResetPasswordRequest(ctx, value, fields...)
	case *models.ResetPasswordRequest:
		return v.validateResetPasswordRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// isValidEmail accepts a bare RFC 5322 address (no display name).
func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}

	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func isStrongPassword(password string) bool {
	return len(password) >= minPasswordLength
}

func (v *CredentialsValidator) validateRegisterRequest(_ context.Context, req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldFullName, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !isValidEmail(req.Email) {
				return ErrInvalidEmail
			}
		case FieldFullName:
			if strings.TrimSpace(req.FullName) == "" {
				return ErrEmptyFullName
			}
		case FieldPassword:
			if !isStrongPassword(req.Password) {
				return ErrWeakPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateLoginRequest only checks presence. Login must not leak format
// opinions: a malformed email fails the credential check like any other
// unknown address.
func (v *CredentialsValidator) validateLoginRequest(_ context.Context, req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if strings.TrimSpace(req.Email) == "" {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if req.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *CredentialsValidator) validateVerifyOTPRequest(_ context.Context, req models.VerifyOTPRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldOTP}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !isValidEmail(req.Email) {
				return ErrInvalidEmail
			}
		case FieldOTP:
			if req.OTP == "" {
				return ErrEmptyOTP
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *CredentialsValidator) validateEmailRequest(_ context.Context, req models.EmailRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !isValidEmail(req.Email) {
				return ErrInvalidEmail
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *CredentialsValidator) validateRefreshRequest(_ context.Context, req models.RefreshRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRefreshToken}
	}

	for _, f := range fields {
		switch f {
		case FieldRefreshToken:
			if req.RefreshToken == "" {
				return ErrEmptyRefreshToken
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *CredentialsValidator) validateChangePasswordRequest(_ context.Context, req models.ChangePasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCurrentPassword, FieldNewPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldCurrentPassword:
			if req.CurrentPassword == "" {
				return ErrEmptyCurrentPassword
			}
		case FieldNewPassword:
			if !isStrongPassword(req.NewPassword) {
				return ErrWeakPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *CredentialsValidator) validateResetPasswordRequest(_ context.Context, req models.ResetPasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldNewPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !isValidEmail(req.Email) {
				return ErrInvalidEmail
			}
		case FieldNewPassword:
			if !isStrongPassword(req.NewPassword) {
				return ErrWeakPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
