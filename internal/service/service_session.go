package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmaksat/newsauth/internal/config"
	"github.com/tmaksat/newsauth/internal/logger"
	"github.com/tmaksat/newsauth/internal/store"
	"github.com/tmaksat/newsauth/internal/token"
	"github.com/tmaksat/newsauth/internal/validators"
	"github.com/tmaksat/newsauth/models"
)

// sessionService is the concrete implementation of [SessionService].
type sessionService struct {
	users         store.UserRepository
	refreshTokens store.RefreshTokenRepository
	issuer        TokenIssuer
	validate      validators.Validator

	// logoutAllSessions controls the default logout scope: when true a
	// logout that targets one token still removes the caller's whole
	// session set.
	logoutAllSessions bool

	logger *logger.Logger
}

// NewSessionService constructs a [SessionService].
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewSessionService(repos *store.Repositories, issuer TokenIssuer, cfg config.Auth, logger *logger.Logger) SessionService {
	return &sessionService{
		users:             repos.UserRepository,
		refreshTokens:     repos.RefreshTokenRepository,
		issuer:            issuer,
		validate:          validators.NewCredentialsValidator(),
		logoutAllSessions: cfg.LogoutAllSessions,
		logger:            logger,
	}
}

// Login authenticates credentials and issues a fresh session.
//
// Unknown email and wrong password both return [ErrInvalidCredentials];
// the caller must not be able to tell which half of the check failed.
// A correct password against a deactivated account returns
// [ErrAccountDisabled].
func (s *sessionService) Login(ctx context.Context, email, password string) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	email = normalizeEmail(email)
	req := models.LoginRequest{Email: email, Password: password}
	if err := s.validate.Validate(ctx, req); err != nil {
		return models.User{}, models.TokenPair{}, fmt.Errorf("%w: %s", ErrInvalidDataProvided, err)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, models.TokenPair{}, ErrInvalidCredentials
		}
		log.Err(err).Msg("user search by email failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !checkPassword(user.PasswordHash, password) {
		return models.User{}, models.TokenPair{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		return models.User{}, models.TokenPair{}, ErrAccountDisabled
	}

	if err := s.users.UpdateLastLogin(ctx, user.UserID); err != nil {
		// The session is still valid without the stamp.
		log.Err(err).Int64("userID", user.UserID).Msg("updating last login failed")
	}

	pair, err := s.issuer.IssuePair(user.UserID)
	if err != nil {
		log.Err(err).Msg("issuing session failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("issuing session failed: %w", err)
	}

	refreshToken := models.RefreshToken{
		Token:     pair.RefreshToken,
		UserID:    user.UserID,
		ExpiresAt: pair.RefreshExpiresAt,
	}
	if err := s.refreshTokens.Insert(ctx, refreshToken); err != nil {
		log.Err(err).Msg("persisting refresh token failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("persisting refresh token failed: %w", err)
	}

	log.Info().Int64("userID", user.UserID).Msg("user logged in")
	return user, pair, nil
}

// Refresh rotates the presented refresh token for a new pair.
//
// The store's conditional consume is the rotation authority: of two
// concurrent calls presenting the same token, exactly one succeeds and the
// other gets [ErrInvalidRefreshToken]. A caller whose connection dies after
// the rotation committed but before the response arrived has lost the
// session and must log in again; the presented token is dead by then.
func (s *sessionService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if err := s.validate.Validate(ctx, models.RefreshRequest{RefreshToken: refreshToken}); err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %s", ErrInvalidDataProvided, err)
	}

	userID, err := s.issuer.ParseRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			return models.TokenPair{}, ErrTokenIsExpired
		}
		return models.TokenPair{}, ErrInvalidRefreshToken
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.TokenPair{}, ErrInvalidRefreshToken
		}
		log.Err(err).Msg("user lookup during refresh failed")
		return models.TokenPair{}, fmt.Errorf("user lookup during refresh failed: %w", err)
	}

	if !user.IsActive {
		if _, err := s.refreshTokens.DeleteAllForUser(ctx, userID); err != nil {
			log.Err(err).Int64("userID", userID).Msg("revoking sessions of disabled account failed")
		}
		return models.TokenPair{}, ErrAccountDisabled
	}

	pair, err := s.issuer.IssuePair(userID)
	if err != nil {
		log.Err(err).Msg("issuing session failed")
		return models.TokenPair{}, fmt.Errorf("issuing session failed: %w", err)
	}

	replacement := models.RefreshToken{
		Token:     pair.RefreshToken,
		UserID:    userID,
		ExpiresAt: pair.RefreshExpiresAt,
	}
	rotatedUserID, err := s.refreshTokens.Rotate(ctx, refreshToken, replacement)
	if err != nil {
		if errors.Is(err, store.ErrRefreshTokenNotFound) {
			return models.TokenPair{}, ErrInvalidRefreshToken
		}
		log.Err(err).Msg("rotating refresh token failed")
		return models.TokenPair{}, fmt.Errorf("rotating refresh token failed: %w", err)
	}

	if rotatedUserID != userID {
		// Signature said one owner, storage said another. The presented
		// token is already consumed; refuse the new pair.
		log.Error().Int64("claimed", userID).Int64("stored", rotatedUserID).Msg("refresh token owner mismatch")
		return models.TokenPair{}, ErrInvalidRefreshToken
	}

	return pair, nil
}

// Logout ends the caller's session. A supplied token is always removed;
// with the logout-all default enabled the caller's whole session set goes
// with it. Without a supplied token every session of the user is removed.
func (s *sessionService) Logout(ctx context.Context, userID int64, refreshToken string) error {
	log := logger.FromContext(ctx)

	if refreshToken != "" {
		if err := s.refreshTokens.Delete(ctx, refreshToken); err != nil {
			log.Err(err).Msg("deleting refresh token failed")
			return fmt.Errorf("deleting refresh token failed: %w", err)
		}
		if !s.logoutAllSessions {
			return nil
		}
	}

	if _, err := s.refreshTokens.DeleteAllForUser(ctx, userID); err != nil {
		log.Err(err).Int64("userID", userID).Msg("deleting user sessions failed")
		return fmt.Errorf("deleting user sessions failed: %w", err)
	}

	return nil
}

// LogoutAll unconditionally revokes every session of the user.
func (s *sessionService) LogoutAll(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContext(ctx)

	revoked, err := s.refreshTokens.DeleteAllForUser(ctx, userID)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("deleting user sessions failed")
		return 0, fmt.Errorf("deleting user sessions failed: %w", err)
	}

	log.Info().Int64("userID", userID).Int64("revoked", revoked).Msg("all sessions revoked")
	return revoked, nil
}

// CurrentUser loads the caller's account record.
func (s *sessionService) CurrentUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return user, nil
}

// ChangePassword verifies the current password, rewrites the hash and
// revokes every session of the user, mirroring the reset flow's
// revoke-on-credential-change rule.
func (s *sessionService) ChangePassword(ctx context.Context, userID int64, current, newPassword string) error {
	log := logger.FromContext(ctx)

	req := models.ChangePasswordRequest{CurrentPassword: current, NewPassword: newPassword}
	if err := s.validate.Validate(ctx, req); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDataProvided, err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("user lookup failed: %w", err)
	}

	if !checkPassword(user.PasswordHash, current) {
		return ErrInvalidCurrentPassword
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		log.Err(err).Msg("hashing new password failed")
		return err
	}

	if err := s.users.UpdatePasswordHash(ctx, userID, passwordHash); err != nil {
		log.Err(err).Msg("updating password hash failed")
		return fmt.Errorf("updating password hash failed: %w", err)
	}

	if _, err := s.refreshTokens.DeleteAllForUser(ctx, userID); err != nil {
		log.Err(err).Int64("userID", userID).Msg("revoking sessions after password change failed")
		return fmt.Errorf("revoking sessions after password change failed: %w", err)
	}

	log.Info().Int64("userID", userID).Msg("password changed, sessions revoked")
	return nil
}

// Authenticate verifies a bearer access token and loads the live user.
//
// The token carries only the user id; role and the active flag are re-read
// from storage on every call, so deactivation and role changes take effect
// without waiting for token expiry.
func (s *sessionService) Authenticate(ctx context.Context, accessToken string) (models.User, error) {
	log := logger.FromContext(ctx)

	userID, err := s.issuer.ParseAccess(accessToken)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			return models.User{}, ErrTokenIsExpired
		}
		return models.User{}, ErrInvalidAccessToken
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrInvalidAccessToken
		}
		log.Err(err).Msg("user lookup during authentication failed")
		return models.User{}, fmt.Errorf("user lookup during authentication failed: %w", err)
	}

	if !user.IsActive {
		return models.User{}, ErrInvalidAccessToken
	}

	return user, nil
}
