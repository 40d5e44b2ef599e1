package service

import (
	"context"
	"sync"
	"time"

	"github.com/tmaksat/newsauth/internal/notify"
	"github.com/tmaksat/newsauth/internal/store"
	"github.com/tmaksat/newsauth/models"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFromPendingFn  func(ctx context.Context, pending models.PendingRegistration, role models.Role) (models.User, error)
	findByEmailFn        func(ctx context.Context, email string) (models.User, error)
	findByIDFn           func(ctx context.Context, userID int64) (models.User, error)
	updateLastLoginFn    func(ctx context.Context, userID int64) error
	updatePasswordHashFn func(ctx context.Context, userID int64, passwordHash string) error
}

func (m *mockUserRepository) CreateFromPending(ctx context.Context, pending models.PendingRegistration, role models.Role) (models.User, error) {
	if m.createFromPendingFn != nil {
		return m.createFromPendingFn(ctx, pending, role)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, userID int64) (models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, userID)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockUserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	if m.updateLastLoginFn != nil {
		return m.updateLastLoginFn(ctx, userID)
	}
	return nil
}

func (m *mockUserRepository) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	if m.updatePasswordHashFn != nil {
		return m.updatePasswordHashFn(ctx, userID, passwordHash)
	}
	return nil
}

// ─────────────────────────────────────────────
// Mock: store.PendingRegistrationRepository
// ─────────────────────────────────────────────

type mockPendingRepository struct {
	upsertFn            func(ctx context.Context, pending models.PendingRegistration) error
	findByEmailFn       func(ctx context.Context, email string) (models.PendingRegistration, error)
	incrementAttemptsFn func(ctx context.Context, email string) (int, error)
	refreshOTPFn        func(ctx context.Context, email, code string, expiresAt time.Time) error
	deleteFn            func(ctx context.Context, email string) error
	deleteStaleFn       func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *mockPendingRepository) Upsert(ctx context.Context, pending models.PendingRegistration) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, pending)
	}
	return nil
}

func (m *mockPendingRepository) FindByEmail(ctx context.Context, email string) (models.PendingRegistration, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return models.PendingRegistration{}, store.ErrPendingRegistrationNotFound
}

func (m *mockPendingRepository) IncrementAttempts(ctx context.Context, email string) (int, error) {
	if m.incrementAttemptsFn != nil {
		return m.incrementAttemptsFn(ctx, email)
	}
	return 0, nil
}

func (m *mockPendingRepository) RefreshOTP(ctx context.Context, email, code string, expiresAt time.Time) error {
	if m.refreshOTPFn != nil {
		return m.refreshOTPFn(ctx, email, code, expiresAt)
	}
	return nil
}

func (m *mockPendingRepository) Delete(ctx context.Context, email string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, email)
	}
	return nil
}

func (m *mockPendingRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.deleteStaleFn != nil {
		return m.deleteStaleFn(ctx, cutoff)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.PasswordResetRepository
// ─────────────────────────────────────────────

type mockResetRepository struct {
	upsertFn            func(ctx context.Context, reset models.PasswordReset) error
	findByEmailFn       func(ctx context.Context, email string) (models.PasswordReset, error)
	incrementAttemptsFn func(ctx context.Context, email string) (int, error)
	markVerifiedFn      func(ctx context.Context, email string) error
	deleteFn            func(ctx context.Context, email string) error
	deleteStaleFn       func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *mockResetRepository) Upsert(ctx context.Context, reset models.PasswordReset) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, reset)
	}
	return nil
}

func (m *mockResetRepository) FindByEmail(ctx context.Context, email string) (models.PasswordReset, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return models.PasswordReset{}, store.ErrPasswordResetNotFound
}

func (m *mockResetRepository) IncrementAttempts(ctx context.Context, email string) (int, error) {
	if m.incrementAttemptsFn != nil {
		return m.incrementAttemptsFn(ctx, email)
	}
	return 0, nil
}

func (m *mockResetRepository) MarkVerified(ctx context.Context, email string) error {
	if m.markVerifiedFn != nil {
		return m.markVerifiedFn(ctx, email)
	}
	return nil
}

func (m *mockResetRepository) Delete(ctx context.Context, email string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, email)
	}
	return nil
}

func (m *mockResetRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.deleteStaleFn != nil {
		return m.deleteStaleFn(ctx, cutoff)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.RefreshTokenRepository
// ─────────────────────────────────────────────

type mockRefreshRepository struct {
	insertFn           func(ctx context.Context, refreshToken models.RefreshToken) error
	rotateFn           func(ctx context.Context, presented string, replacement models.RefreshToken) (int64, error)
	deleteFn           func(ctx context.Context, tokenValue string) error
	deleteAllForUserFn func(ctx context.Context, userID int64) (int64, error)
	deleteExpiredFn    func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockRefreshRepository) Insert(ctx context.Context, refreshToken models.RefreshToken) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, refreshToken)
	}
	return nil
}

func (m *mockRefreshRepository) Rotate(ctx context.Context, presented string, replacement models.RefreshToken) (int64, error) {
	if m.rotateFn != nil {
		return m.rotateFn(ctx, presented, replacement)
	}
	return 0, store.ErrRefreshTokenNotFound
}

func (m *mockRefreshRepository) Delete(ctx context.Context, tokenValue string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tokenValue)
	}
	return nil
}

func (m *mockRefreshRepository) DeleteAllForUser(ctx context.Context, userID int64) (int64, error) {
	if m.deleteAllForUserFn != nil {
		return m.deleteAllForUserFn(ctx, userID)
	}
	return 0, nil
}

func (m *mockRefreshRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx, now)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Fake: in-memory refresh token store
// ─────────────────────────────────────────────

// fakeRefreshStore implements the real rotation contract in memory, so
// concurrency tests can exercise the one-winner guarantee without a
// database.
type fakeRefreshStore struct {
	mu     sync.Mutex
	tokens map[string]models.RefreshToken
}

func newFakeRefreshStore() *fakeRefreshStore {
	return &fakeRefreshStore{tokens: make(map[string]models.RefreshToken)}
}

func (f *fakeRefreshStore) Insert(_ context.Context, refreshToken models.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[refreshToken.Token] = refreshToken
	return nil
}

func (f *fakeRefreshStore) Rotate(_ context.Context, presented string, replacement models.RefreshToken) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.tokens[presented]
	if !ok {
		return 0, store.ErrRefreshTokenNotFound
	}
	delete(f.tokens, presented)

	if !stored.ExpiresAt.After(time.Now()) {
		return 0, store.ErrRefreshTokenNotFound
	}

	replacement.UserID = stored.UserID
	f.tokens[replacement.Token] = replacement
	return stored.UserID, nil
}

func (f *fakeRefreshStore) Delete(_ context.Context, tokenValue string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, tokenValue)
	return nil
}

func (f *fakeRefreshStore) DeleteAllForUser(_ context.Context, userID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var dropped int64
	for value, stored := range f.tokens {
		if stored.UserID == userID {
			delete(f.tokens, value)
			dropped++
		}
	}
	return dropped, nil
}

func (f *fakeRefreshStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var dropped int64
	for value, stored := range f.tokens {
		if !stored.ExpiresAt.After(now) {
			delete(f.tokens, value)
			dropped++
		}
	}
	return dropped, nil
}

func (f *fakeRefreshStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tokens)
}

// ─────────────────────────────────────────────
// Mock: TokenIssuer and notify.Notifier
// ─────────────────────────────────────────────

type mockIssuer struct {
	issuePairFn    func(userID int64) (models.TokenPair, error)
	parseAccessFn  func(tokenString string) (int64, error)
	parseRefreshFn func(tokenString string) (int64, error)
}

func (m *mockIssuer) IssuePair(userID int64) (models.TokenPair, error) {
	if m.issuePairFn != nil {
		return m.issuePairFn(userID)
	}
	return models.TokenPair{
		AccessToken:      "access",
		RefreshToken:     "refresh",
		RefreshExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (m *mockIssuer) ParseAccess(tokenString string) (int64, error) {
	if m.parseAccessFn != nil {
		return m.parseAccessFn(tokenString)
	}
	return 0, nil
}

func (m *mockIssuer) ParseRefresh(tokenString string) (int64, error) {
	if m.parseRefreshFn != nil {
		return m.parseRefreshFn(tokenString)
	}
	return 0, nil
}

type mockNotifier struct {
	sendOTPFn func(ctx context.Context, email, code string, purpose notify.Purpose) error
}

func (m *mockNotifier) SendOTP(ctx context.Context, email, code string, purpose notify.Purpose) error {
	if m.sendOTPFn != nil {
		return m.sendOTPFn(ctx, email, code, purpose)
	}
	return nil
}
