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

// registrationService is the concrete implementation of
// [RegistrationService]. It owns the pending-registration ledger and hands
// codes to the outbound notifier; the user row itself is only ever created
// by the store inside the verification transaction.
type registrationService struct {
	users         store.UserRepository
	pending       store.PendingRegistrationRepository
	refreshTokens store.RefreshTokenRepository
	issuer        TokenIssuer
	notifier      notify.Notifier
	validate      validators.Validator

	otpLength      int
	otpTTL         time.Duration
	otpMaxAttempts int

	logger *logger.Logger
}

// NewRegistrationService constructs a [RegistrationService] with the OTP
// policy taken from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewRegistrationService(repos *store.Repositories, issuer TokenIssuer, notifier notify.Notifier, cfg config.Auth, logger *logger.Logger) RegistrationService {
	return &registrationService{
		users:          repos.UserRepository,
		pending:        repos.PendingRegistrationRepository,
		refreshTokens:  repos.RefreshTokenRepository,
		issuer:         issuer,
		notifier:       notifier,
		validate:       validators.NewCredentialsValidator(),
		otpLength:      cfg.OTPLength,
		otpTTL:         cfg.OTPTTL,
		otpMaxAttempts: cfg.OTPMaxAttempts,
		logger:         logger,
	}
}

// RequestOTP starts (or restarts) a signup for the email.
//
// The password is hashed before anything is persisted, so the plaintext
// never reaches the ledger. Re-requesting for the same email overwrites the
// prior pending row and resets the attempt counter (last-request-wins), so
// the old code is invalidated the moment a new one is dispatched.
func (s *registrationService) RequestOTP(ctx context.Context, email, fullName, password string) error {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)
	req := models.RegisterRequest{Email: email, FullName: fullName, Password: password}
	if err := s.validate.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDataProvided, err)
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return ErrAlreadyRegistered
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Msg("user lookup before registration failed")
		return fmt.Errorf("user lookup before registration failed: %w", err)
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		log.Err(err).Msg("hashing registration password failed")
		return err
	}

	code, err := otp.Generate(s.otpLength)
	if err != nil {
		log.Err(err).Msg("generating registration otp failed")
		return fmt.Errorf("generating registration otp failed: %w", err)
	}

	pending := models.PendingRegistration{
		Email:        email,
		FullName:     fullName,
		PasswordHash: passwordHash,
		OTP:          code,
		OTPExpiresAt: time.Now().Add(s.otpTTL),
	}
	if err := s.pending.Upsert(ctx, pending); err != nil {
		log.Err(err).Msg("storing pending registration failed")
		return fmt.Errorf("storing pending registration failed: %w", err)
	}

	if err := s.notifier.SendOTP(ctx, email, code, notify.PurposeRegistration); err != nil {
		log.Err(err).Msg("dispatching registration otp failed")
		return fmt.Errorf("dispatching registration otp failed: %w", err)
	}

	log.Info().Str("email", email).Msg("registration otp dispatched")
	return nil
}

// VerifyOTP checks the code against the pending row and, on success,
// converts it into a real user and issues the first session.
//
// Failure order matters: an absent row beats everything, expiry beats the
// attempt cap, and the cap beats the code comparison, so a brute-forcing
// caller learns nothing once the budget is spent. The row survives expiry
// and exhausted attempts so a resend can revive the flow.
func (s *registrationService) VerifyOTP(ctx context.Context, email, code string) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)
	req := models.VerifyOTPRequest{Email: email, OTP: code}
	if err := s.validate.Validate(ctx, req); err != nil {
		return models.User{}, models.TokenPair{}, fmt.Errorf("%w: %s", ErrInvalidDataProvided, err)
	}

	pending, err := s.pending.FindByEmail(ctx, email)
	if err != nil {
		return models.User{}, models.TokenPair{}, fmt.Errorf("pending registration lookup failed: %w", err)
	}

	if time.Now().After(pending.OTPExpiresAt) {
		return models.User{}, models.TokenPair{}, ErrOTPExpired
	}

	if pending.Attempts >= s.otpMaxAttempts {
		return models.User{}, models.TokenPair{}, ErrOTPAttemptsExceeded
	}

	if subtle.ConstantTimeCompare([]byte(pending.OTP), []byte(code)) != 1 {
		if _, err := s.pending.IncrementAttempts(ctx, email); err != nil {
			log.Err(err).Msg("incrementing registration attempts failed")
		}
		return models.User{}, models.TokenPair{}, ErrOTPInvalid
	}

	user, err := s.users.CreateFromPending(ctx, pending, models.RoleUser)
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.User{}, models.TokenPair{}, ErrAlreadyRegistered
		}
		log.Err(err).Msg("creating user from pending registration failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("creating user from pending registration failed: %w", err)
	}

	pair, err := s.issuer.IssuePair(user.UserID)
	if err != nil {
		log.Err(err).Msg("issuing first session failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("issuing first session failed: %w", err)
	}

	refreshToken := models.RefreshToken{
		Token:     pair.RefreshToken,
		UserID:    user.UserID,
		ExpiresAt: pair.RefreshExpiresAt,
	}
	if err := s.refreshTokens.Insert(ctx, refreshToken); err != nil {
		log.Err(err).Msg("persisting first refresh token failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("persisting first refresh token failed: %w", err)
	}

	log.Info().Int64("userID", user.UserID).Msg("registration verified, user created")
	return user, pair, nil
}

// ResendOTP regenerates the code for an existing pending signup, resets the
// attempt counter and re-dispatches.
func (s *registrationService) ResendOTP(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)
	if err := s.validate.Validate(ctx, models.EmailRequest{Email: email}); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDataProvided, err)
	}

	code, err := otp.Generate(s.otpLength)
	if err != nil {
		log.Err(err).Msg("generating registration otp failed")
		return fmt.Errorf("generating registration otp failed: %w", err)
	}

	if err := s.pending.RefreshOTP(ctx, email, code, time.Now().Add(s.otpTTL)); err != nil {
		return fmt.Errorf("refreshing registration otp failed: %w", err)
	}

	if err := s.notifier.SendOTP(ctx, email, code, notify.PurposeRegistration); err != nil {
		log.Err(err).Msg("dispatching registration otp failed")
		return fmt.Errorf("dispatching registration otp failed: %w", err)
	}

	return nil
}
