package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/tmaksat/newsauth/internal/logger"
	"github.com/tmaksat/newsauth/models"
)

// pendingRegistrationRepository is the PostgreSQL-backed implementation of
// [PendingRegistrationRepository]: the ledger of in-flight signups keyed by
// email.
type pendingRegistrationRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPendingRegistrationRepository constructs a
// [PendingRegistrationRepository] backed by the provided database
// connection and logger.
func NewPendingRegistrationRepository(db *DB, logger *logger.Logger) PendingRegistrationRepository {
	logger.Debug().Msg("creating pending registration repository")
	return &pendingRegistrationRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert creates or overwrites the row for the email. The ON CONFLICT
// branch resets the attempt counter, implementing the documented
// last-request-wins policy: the previous OTP is invalidated the moment a
// new request arrives.
func (r *pendingRegistrationRepository) Upsert(ctx context.Context, pending models.PendingRegistration) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, upsertPendingRegistration,
		pending.Email, pending.FullName, pending.PasswordHash, pending.OTP, pending.OTPExpiresAt)
	if err != nil {
		log.Err(err).Str("func", "*pendingRegistrationRepository.Upsert").Msg("error: upserting pending registration failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// FindByEmail returns the in-flight signup for the email, or
// [ErrPendingRegistrationNotFound] if none exists.
func (r *pendingRegistrationRepository) FindByEmail(ctx context.Context, email string) (models.PendingRegistration, error) {
	log := logger.FromContext(ctx)

	var pending models.PendingRegistration
	row := r.db.QueryRowContext(ctx, findPendingRegistrationByEmail, email)
	if err := row.Scan(
		&pending.Email,
		&pending.FullName,
		&pending.PasswordHash,
		&pending.OTP,
		&pending.OTPExpiresAt,
		&pending.Attempts,
		&pending.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PendingRegistration{}, ErrPendingRegistrationNotFound
		}
		log.Err(err).Str("func", "*pendingRegistrationRepository.FindByEmail").Msg("error: scanning pending registration failed")
		return models.PendingRegistration{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return pending, nil
}

// IncrementAttempts bumps the failed-verification counter in a single
// UPDATE ... RETURNING statement, so concurrent verifies for the same email
// never lose increments.
func (r *pendingRegistrationRepository) IncrementAttempts(ctx context.Context, email string) (int, error) {
	log := logger.FromContext(ctx)

	var attempts int
	row := r.db.QueryRowContext(ctx, incrementPendingRegistrationAttempts, email)
	if err := row.Scan(&attempts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrPendingRegistrationNotFound
		}
		log.Err(err).Str("func", "*pendingRegistrationRepository.IncrementAttempts").Msg("error: incrementing attempts failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return attempts, nil
}

// RefreshOTP replaces the code and expiry and resets the attempt counter
// (resend). Returns [ErrPendingRegistrationNotFound] if no row exists.
func (r *pendingRegistrationRepository) RefreshOTP(ctx context.Context, email, code string, expiresAt time.Time) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, refreshPendingRegistrationOTP, email, code, expiresAt)
	if err != nil {
		log.Err(err).Str("func", "*pendingRegistrationRepository.RefreshOTP").Msg("error: refreshing otp failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrPendingRegistrationNotFound
	}

	return nil
}

// Delete removes the row for the email. Deleting an absent row is not an
// error.
func (r *pendingRegistrationRepository) Delete(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deletePendingRegistration, email); err != nil {
		log.Err(err).Str("func", "*pendingRegistrationRepository.Delete").Msg("error: deleting pending registration failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// DeleteStale removes rows created before the cutoff. Rows merely past
// their OTP expiry survive until the cutoff so the user can still ask for
// a resend.
func (r *pendingRegistrationRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Delete(models.PendingRegistration{}.TableName()).
		Where(sq.Lt{"created_at": cutoff}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*pendingRegistrationRepository.DeleteStale").Msg("error: building delete query failed")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*pendingRegistrationRepository.DeleteStale").Msg("error: deleting stale rows failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return result.RowsAffected()
}
