package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmaksat/newsauth/internal/logger"
	"github.com/tmaksat/newsauth/internal/notify"
	"github.com/tmaksat/newsauth/internal/store"
	"github.com/tmaksat/newsauth/internal/validators"
	"github.com/tmaksat/newsauth/models"
)

func newTestResetService(users *mockUserRepository, resets *mockResetRepository, refresh store.RefreshTokenRepository, notifier *mockNotifier) *passwordResetService {
	if refresh == nil {
		refresh = &mockRefreshRepository{}
	}
	if notifier == nil {
		notifier = &mockNotifier{}
	}
	return &passwordResetService{
		users:          users,
		resets:         resets,
		refreshTokens:  refresh,
		notifier:       notifier,
		validate:       validators.NewCredentialsValidator(),
		otpLength:      6,
		otpTTL:         10 * time.Minute,
		otpMaxAttempts: 5,
		logger:         logger.Nop(),
	}
}

func resetRow(code string, expiresAt time.Time, attempts int, verified bool) models.PasswordReset {
	return models.PasswordReset{
		Email:        "john@example.com",
		OTP:          code,
		OTPExpiresAt: expiresAt,
		Attempts:     attempts,
		Verified:     verified,
	}
}

func TestRequestReset_UnknownEmailIsSuccessShaped(t *testing.T) {
	ctx := context.Background()

	dispatched := false
	n := &mockNotifier{
		sendOTPFn: func(_ context.Context, _, _ string, _ notify.Purpose) error {
			dispatched = true
			return nil
		},
	}
	svc := newTestResetService(&mockUserRepository{}, &mockResetRepository{}, nil, n)

	err := svc.RequestReset(ctx, "ghost@example.com")
	require.NoError(t, err, "unknown emails must not be distinguishable")
	assert.False(t, dispatched)
}

func TestRequestReset_DisabledAccountIsSuccessShaped(t *testing.T) {
	ctx := context.Background()

	dispatched := false
	users := &mockUserRepository{
		findByEmailFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{UserID: 7, IsActive: false}, nil
		},
	}
	n := &mockNotifier{
		sendOTPFn: func(_ context.Context, _, _ string, _ notify.Purpose) error {
			dispatched = true
			return nil
		},
	}
	svc := newTestResetService(users, &mockResetRepository{}, nil, n)

	require.NoError(t, svc.RequestReset(ctx, "john@example.com"))
	assert.False(t, dispatched)
}

func TestRequestReset_ActiveAccountGetsCode(t *testing.T) {
	ctx := context.Background()

	var stored models.PasswordReset
	var sentCode string

	users := &mockUserRepository{
		findByEmailFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{UserID: 7, IsActive: true}, nil
		},
	}
	resets := &mockResetRepository{
		upsertFn: func(_ context.Context, r models.PasswordReset) error {
			stored = r
			return nil
		},
	}
	n := &mockNotifier{
		sendOTPFn: func(_ context.Context, email, code string, purpose notify.Purpose) error {
			sentCode = code
			assert.Equal(t, "john@example.com", email)
			assert.Equal(t, notify.PurposePasswordReset, purpose)
			return nil
		},
	}
	svc := newTestResetService(users, resets, nil, n)

	require.NoError(t, svc.RequestReset(ctx, "John@Example.com"))
	assert.Len(t, stored.OTP, 6)
	assert.Equal(t, stored.OTP, sentCode)
	assert.Equal(t, "john@example.com", stored.Email)
}

func TestResetVerifyOTP_MarksVerified(t *testing.T) {
	ctx := context.Background()

	verified := false
	resets := &mockResetRepository{
		findByEmailFn: func(_ context.Context, _ string) (models.PasswordReset, error) {
			return resetRow("123456", time.Now().Add(time.Minute), 0, false), nil
		},
		markVerifiedFn: func(_ context.Context, email string) error {
			verified = true
			assert.Equal(t, "john@example.com", email)
			return nil
		},
	}
	svc := newTestResetService(&mockUserRepository{}, resets, nil, nil)

	require.NoError(t, svc.VerifyOTP(ctx, "john@example.com", "123456"))
	assert.True(t, verified)
}

func TestResetVerifyOTP_FailureModes(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		svc := newTestResetService(&mockUserRepository{}, &mockResetRepository{}, nil, nil)
		err := svc.VerifyOTP(ctx, "ghost@example.com", "123456")
		assert.ErrorIs(t, err, store.ErrPasswordResetNotFound)
	})

	t.Run("expired", func(t *testing.T) {
		resets := &mockResetRepository{
			findByEmailFn: func(_ context.Context, _ string) (models.PasswordReset, error) {
				return resetRow("123456", time.Now().Add(-time.Minute), 0, false), nil
			},
		}
		svc := newTestResetService(&mockUserRepository{}, resets, nil, nil)
		err := svc.VerifyOTP(ctx, "john@example.com", "123456")
		assert.ErrorIs(t, err, ErrOTPExpired)
	})

	t.Run("attempts exceeded", func(t *testing.T) {
		resets := &mockResetRepository{
			findByEmailFn: func(_ context.Context, _ string) (models.PasswordReset, error) {
				return resetRow("123456", time.Now().Add(time.Minute), 5, false), nil
			},
		}
		svc := newTestResetService(&mockUserRepository{}, resets, nil, nil)
		err := svc.VerifyOTP(ctx, "john@example.com", "123456")
		assert.ErrorIs(t, err, ErrOTPAttemptsExceeded)
	})

	t.Run("mismatch increments", func(t *testing.T) {
		incremented := false
		resets := &mockResetRepository{
			findByEmailFn: func(_ context.Context, _ string) (models.PasswordReset, error) {
				return resetRow("123456", time.Now().Add(time.Minute), 0, false), nil
			},
			incrementAttemptsFn: func(_ context.Context, _ string) (int, error) {
				incremented = true
				return 1, nil
			},
		}
		svc := newTestResetService(&mockUserRepository{}, resets, nil, nil)
		err := svc.VerifyOTP(ctx, "john@example.com", "654321")
		assert.ErrorIs(t, err, ErrOTPInvalid)
		assert.True(t, incremented)
	})
}

func TestResetPassword_RequiresVerifiedFlag(t *testing.T) {
	ctx := context.Background()

	resets := &mockResetRepository{
		findByEmailFn: func(_ context.Context, _ string) (models.PasswordReset, error) {
			return resetRow("123456", time.Now().Add(time.Minute), 0, false), nil
		},
	}
	svc := newTestResetService(&mockUserRepository{}, resets, nil, nil)

	err := svc.ResetPassword(ctx, "john@example.com", "NewPassw0rd")
	assert.ErrorIs(t, err, ErrResetNotVerified)
}

func TestResetPassword_Success(t *testing.T) {
	ctx := context.Background()

	var newHash string
	rowDeleted := false
	revoked := false

	users := &mockUserRepository{
		findByEmailFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{UserID: 7, IsActive: true}, nil
		},
		updatePasswordHashFn: func(_ context.Context, userID int64, passwordHash string) error {
			assert.Equal(t, int64(7), userID)
			newHash = passwordHash
			return nil
		},
	}
	resets := &mockResetRepository{
		findByEmailFn: func(_ context.Context, _ string) (models.PasswordReset, error) {
			return resetRow("123456", time.Now().Add(time.Minute), 1, true), nil
		},
		deleteFn: func(_ context.Context, email string) error {
			rowDeleted = true
			assert.Equal(t, "john@example.com", email)
			return nil
		},
	}
	refresh := &mockRefreshRepository{
		deleteAllForUserFn: func(_ context.Context, userID int64) (int64, error) {
			revoked = true
			assert.Equal(t, int64(7), userID)
			return 3, nil
		},
	}
	svc := newTestResetService(users, resets, refresh, nil)

	require.NoError(t, svc.ResetPassword(ctx, "john@example.com", "NewPassw0rd"))
	assert.True(t, checkPassword(newHash, "NewPassw0rd"))
	assert.True(t, rowDeleted, "reset row is single use")
	assert.True(t, revoked, "all sessions must be revoked on credential change")
}

func TestResetPassword_ExpiredVerifiedRow(t *testing.T) {
	ctx := context.Background()

	resets := &mockResetRepository{
		findByEmailFn: func(_ context.Context, _ string) (models.PasswordReset, error) {
			return resetRow("123456", time.Now().Add(-time.Minute), 1, true), nil
		},
	}
	svc := newTestResetService(&mockUserRepository{}, resets, nil, nil)

	err := svc.ResetPassword(ctx, "john@example.com", "NewPassw0rd")
	assert.ErrorIs(t, err, ErrOTPExpired)
}
