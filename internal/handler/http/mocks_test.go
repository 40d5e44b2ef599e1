package http

import (
	"context"
	"time"

	"github.com/tmaksat/newsauth/internal/config"
	"github.com/tmaksat/newsauth/internal/logger"
	"github.com/tmaksat/newsauth/internal/rate"
	"github.com/tmaksat/newsauth/internal/service"
	"github.com/tmaksat/newsauth/models"
)

// ─────────────────────────────────────────────
// Mock: service.RegistrationService
// ─────────────────────────────────────────────

type mockRegistrationService struct {
	requestOTPFn func(ctx context.Context, email, fullName, password string) error
	verifyOTPFn  func(ctx context.Context, email, code string) (models.User, models.TokenPair, error)
	resendOTPFn  func(ctx context.Context, email string) error
}

func (m *mockRegistrationService) RequestOTP(ctx context.Context, email, fullName, password string) error {
	if m.requestOTPFn != nil {
		return m.requestOTPFn(ctx, email, fullName, password)
	}
	return nil
}

func (m *mockRegistrationService) VerifyOTP(ctx context.Context, email, code string) (models.User, models.TokenPair, error) {
	if m.verifyOTPFn != nil {
		return m.verifyOTPFn(ctx, email, code)
	}
	return models.User{}, models.TokenPair{}, nil
}

func (m *mockRegistrationService) ResendOTP(ctx context.Context, email string) error {
	if m.resendOTPFn != nil {
		return m.resendOTPFn(ctx, email)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: service.SessionService
// ─────────────────────────────────────────────

type mockSessionService struct {
	loginFn          func(ctx context.Context, email, password string) (models.User, models.TokenPair, error)
	refreshFn        func(ctx context.Context, refreshToken string) (models.TokenPair, error)
	logoutFn         func(ctx context.Context, userID int64, refreshToken string) error
	logoutAllFn      func(ctx context.Context, userID int64) (int64, error)
	currentUserFn    func(ctx context.Context, userID int64) (models.User, error)
	changePasswordFn func(ctx context.Context, userID int64, current, newPassword string) error
	authenticateFn   func(ctx context.Context, accessToken string) (models.User, error)
}

func (m *mockSessionService) Login(ctx context.Context, email, password string) (models.User, models.TokenPair, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, email, password)
	}
	return models.User{}, models.TokenPair{}, nil
}

func (m *mockSessionService) Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	if m.refreshFn != nil {
		return m.refreshFn(ctx, refreshToken)
	}
	return models.TokenPair{}, nil
}

func (m *mockSessionService) Logout(ctx context.Context, userID int64, refreshToken string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, userID, refreshToken)
	}
	return nil
}

func (m *mockSessionService) LogoutAll(ctx context.Context, userID int64) (int64, error) {
	if m.logoutAllFn != nil {
		return m.logoutAllFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockSessionService) CurrentUser(ctx context.Context, userID int64) (models.User, error) {
	if m.currentUserFn != nil {
		return m.currentUserFn(ctx, userID)
	}
	return models.User{UserID: userID}, nil
}

func (m *mockSessionService) ChangePassword(ctx context.Context, userID int64, current, newPassword string) error {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(ctx, userID, current, newPassword)
	}
	return nil
}

func (m *mockSessionService) Authenticate(ctx context.Context, accessToken string) (models.User, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, accessToken)
	}
	return models.User{}, service.ErrInvalidAccessToken
}

// ─────────────────────────────────────────────
// Mock: service.PasswordResetService
// ─────────────────────────────────────────────

type mockPasswordResetService struct {
	requestResetFn  func(ctx context.Context, email string) error
	verifyOTPFn     func(ctx context.Context, email, code string) error
	resetPasswordFn func(ctx context.Context, email, newPassword string) error
}

func (m *mockPasswordResetService) RequestReset(ctx context.Context, email string) error {
	if m.requestResetFn != nil {
		return m.requestResetFn(ctx, email)
	}
	return nil
}

func (m *mockPasswordResetService) VerifyOTP(ctx context.Context, email, code string) error {
	if m.verifyOTPFn != nil {
		return m.verifyOTPFn(ctx, email, code)
	}
	return nil
}

func (m *mockPasswordResetService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if m.resetPasswordFn != nil {
		return m.resetPasswordFn(ctx, email, newPassword)
	}
	return nil
}

// ─────────────────────────────────────────────
// Helper
// ─────────────────────────────────────────────

type testServices struct {
	registration *mockRegistrationService
	session      *mockSessionService
	reset        *mockPasswordResetService
}

func newTestHandler(svcs testServices) *Handler {
	if svcs.registration == nil {
		svcs.registration = &mockRegistrationService{}
	}
	if svcs.session == nil {
		svcs.session = &mockSessionService{}
	}
	if svcs.reset == nil {
		svcs.reset = &mockPasswordResetService{}
	}

	limiter := rate.NewLimiter(config.RateLimit{Window: 15 * time.Minute, Limit: 100})

	return NewHandler(&service.Services{
		RegistrationService:  svcs.registration,
		SessionService:       svcs.session,
		PasswordResetService: svcs.reset,
	}, limiter, logger.Nop())
}
