package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/tmaksat/newsauth/internal/config"
	"github.com/tmaksat/newsauth/internal/logger"
	"github.com/tmaksat/newsauth/internal/notify"
	"github.com/tmaksat/newsauth/internal/otp"
	"github.com/tmaksat/newsauth/internal/store"
	"github.com/tmaksat/newsauth/internal/validators"
	"github.com/tmaksat/newsauth/models"
)

// passwordResetService is the concrete implementation of
// [PasswordResetService]. The flow is gated twice: a correct code flips the
// verified flag, and only a verified unexpired row authorizes the final
// password rewrite.
type passwordResetService struct {
	users         store.UserRepository
	resets        store.PasswordResetRepository
	refreshTokens store.RefreshTokenRepository
	notifier      notify.Notifier
	validate      validators.Validator

	otpLength      int
	otpTTL         time.Duration
	otpMaxAttempts int

	logger *logger.Logger
}

// NewPasswordResetService constructs a [PasswordResetService] with the OTP
// policy taken from cfg.
func NewPasswordResetService(repos *store.Repositories, notifier notify.Notifier, cfg config.Auth, logger *logger.Logger) PasswordResetService {
	return &passwordResetService{
		users:          repos.UserRepository,
		resets:         repos.PasswordResetRepository,
		refreshTokens:  repos.RefreshTokenRepository,
		notifier:       notifier,
		validate:       validators.NewCredentialsValidator(),
		otpLength:      cfg.OTPLength,
		otpTTL:         cfg.OTPTTL,
		otpMaxAttempts: cfg.OTPMaxAttempts,
		logger:         logger,
	}
}

// RequestReset starts a reset for the email.
//
// Unknown and inactive accounts get the same success-shaped answer as real
// ones so the endpoint cannot be used to enumerate registered emails; a
// code is only dispatched when an active account owns the address.
func (s *passwordResetService) RequestReset(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)
	if err := s.validate.Validate(ctx, models.EmailRequest{Email: email}); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDataProvided, err)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Info().Str("email", email).Msg("password reset requested for unknown email")
			return nil
		}
		log.Err(err).Msg("user lookup before password reset failed")
		return fmt.Errorf("user lookup before password reset failed: %w", err)
	}
	if !user.IsActive {
		log.Info().Int64("userID", user.UserID).Msg("password reset requested for disabled account")
		return nil
	}

	code, err := otp.Generate(s.otpLength)
	if err != nil {
		log.Err(err).Msg("generating reset otp failed")
		return fmt.Errorf("generating reset otp failed: %w", err)
	}

	reset := models.PasswordReset{
		Email:        email,
		OTP:          code,
		OTPExpiresAt: time.Now().Add(s.otpTTL),
	}
	if err := s.resets.Upsert(ctx, reset); err != nil {
		log.Err(err).Msg("storing password reset failed")
		return fmt.Errorf("storing password reset failed: %w", err)
	}

	if err := s.notifier.SendOTP(ctx, email, code, notify.PurposePasswordReset); err != nil {
		log.Err(err).Msg("dispatching reset otp failed")
		return fmt.Errorf("dispatching reset otp failed: %w", err)
	}

	log.Info().Str("email", email).Msg("password reset otp dispatched")
	return nil
}

// VerifyOTP checks the code with the same expiry/attempt-cap/mismatch
// semantics as registration. On success it only flips the verified flag;
// the row survives for the final reset call and no password changes yet.
func (s *passwordResetService) VerifyOTP(ctx context.Context, email, code string) error {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)
	if err := s.validate.Validate(ctx, models.VerifyOTPRequest{Email: email, OTP: code}); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDataProvided, err)
	}

	reset, err := s.resets.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("password reset lookup failed: %w", err)
	}

	if time.Now().After(reset.OTPExpiresAt) {
		return ErrOTPExpired
	}

	if reset.Attempts >= s.otpMaxAttempts {
		return ErrOTPAttemptsExceeded
	}

	if subtle.ConstantTimeCompare([]byte(reset.OTP), []byte(code)) != 1 {
		if _, err := s.resets.IncrementAttempts(ctx, email); err != nil {
			log.Err(err).Msg("incrementing reset attempts failed")
		}
		return ErrOTPInvalid
	}

	if err := s.resets.MarkVerified(ctx, email); err != nil {
		log.Err(err).Msg("marking reset verified failed")
		return fmt.Errorf("marking reset verified failed: %w", err)
	}

	return nil
}

// ResetPassword performs the final step of the flow: it requires a
// verified, unexpired row, rewrites the user's hash, deletes the row
// (single use) and revokes every session of the user.
func (s *passwordResetService) ResetPassword(ctx context.Context, email, newPassword string) error {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)
	req := models.ResetPasswordRequest{Email: email, NewPassword: newPassword}
	if err := s.validate.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDataProvided, err)
	}

	reset, err := s.resets.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("password reset lookup failed: %w", err)
	}

	if !reset.Verified {
		return ErrResetNotVerified
	}

	if time.Now().After(reset.OTPExpiresAt) {
		return ErrOTPExpired
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("user lookup during password reset failed: %w", err)
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		log.Err(err).Msg("hashing new password failed")
		return err
	}

	if err := s.users.UpdatePasswordHash(ctx, user.UserID, passwordHash); err != nil {
		log.Err(err).Msg("updating password hash failed")
		return fmt.Errorf("updating password hash failed: %w", err)
	}

	if err := s.resets.Delete(ctx, email); err != nil {
		log.Err(err).Msg("deleting password reset failed")
		return fmt.Errorf("deleting password reset failed: %w", err)
	}

	if _, err := s.refreshTokens.DeleteAllForUser(ctx, user.UserID); err != nil {
		log.Err(err).Int64("userID", user.UserID).Msg("revoking sessions after password reset failed")
		return fmt.Errorf("revoking sessions after password reset failed: %w", err)
	}

	log.Info().Int64("userID", user.UserID).Msg("password reset completed, sessions revoked")
	return nil
}
