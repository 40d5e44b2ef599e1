package models

// Request and response bodies of the HTTP auth API.

// RegisterRequest starts an OTP-gated registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// VerifyOTPRequest presents a one-time passcode for an in-flight
// registration or password reset.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// EmailRequest carries only an email address (resend, reset request).
type EmailRequest struct {
	Email string `json:"email"`
}

// LoginRequest carries credential login input.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest exchanges a refresh token for a fresh pair.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutRequest optionally names the refresh token being surrendered.
// When empty, every session of the caller is terminated.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

// ChangePasswordRequest rewrites the caller's password after proving
// possession of the current one.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ResetPasswordRequest finishes an OTP-verified password reset.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

// AuthResponse is returned by login, registration verify and refresh.
// User is omitted on plain refresh responses.
type AuthResponse struct {
	User         *User  `json:"user,omitempty"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// MessageResponse is a success-shaped acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorBody is the machine-readable error payload.
// Kind is stable; Message is for humans.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ErrorResponse wraps an [ErrorBody] in the conventional envelope.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}
