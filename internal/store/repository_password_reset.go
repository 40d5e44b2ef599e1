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

// passwordResetRepository is the PostgreSQL-backed implementation of
// [PasswordResetRepository].
type passwordResetRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPasswordResetRepository constructs a [PasswordResetRepository] backed
// by the provided database connection and logger.
func NewPasswordResetRepository(db *DB, logger *logger.Logger) PasswordResetRepository {
	logger.Debug().Msg("creating password reset repository")
	return &passwordResetRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert creates or overwrites the row for the email, resetting the
// attempt counter and the verified flag (last-request-wins).
func (r *passwordResetRepository) Upsert(ctx context.Context, reset models.PasswordReset) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, upsertPasswordReset, reset.Email, reset.OTP, reset.OTPExpiresAt)
	if err != nil {
		log.Err(err).Str("func", "*passwordResetRepository.Upsert").Msg("error: upserting password reset failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// FindByEmail returns the in-flight reset for the email, or
// [ErrPasswordResetNotFound] if none exists.
func (r *passwordResetRepository) FindByEmail(ctx context.Context, email string) (models.PasswordReset, error) {
	log := logger.FromContext(ctx)

	var reset models.PasswordReset
	row := r.db.QueryRowContext(ctx, findPasswordResetByEmail, email)
	if err := row.Scan(
		&reset.Email,
		&reset.OTP,
		&reset.OTPExpiresAt,
		&reset.Attempts,
		&reset.Verified,
		&reset.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PasswordReset{}, ErrPasswordResetNotFound
		}
		log.Err(err).Str("func", "*passwordResetRepository.FindByEmail").Msg("error: scanning password reset failed")
		return models.PasswordReset{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return reset, nil
}

// IncrementAttempts bumps the failed-verification counter atomically and
// returns the new value.
func (r *passwordResetRepository) IncrementAttempts(ctx context.Context, email string) (int, error) {
	log := logger.FromContext(ctx)

	var attempts int
	row := r.db.QueryRowContext(ctx, incrementPasswordResetAttempts, email)
	if err := row.Scan(&attempts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrPasswordResetNotFound
		}
		log.Err(err).Str("func", "*passwordResetRepository.IncrementAttempts").Msg("error: incrementing attempts failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return attempts, nil
}

// MarkVerified flips the gating flag after a correct code was presented
// before expiry. Returns [ErrPasswordResetNotFound] if no row exists.
func (r *passwordResetRepository) MarkVerified(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, markPasswordResetVerified, email)
	if err != nil {
		log.Err(err).Str("func", "*passwordResetRepository.MarkVerified").Msg("error: marking reset verified failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrPasswordResetNotFound
	}

	return nil
}

// Delete removes the row for the email. Deleting an absent row is not an
// error.
func (r *passwordResetRepository) Delete(ctx context.Context, email string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deletePasswordReset, email); err != nil {
		log.Err(err).Str("func", "*passwordResetRepository.Delete").Msg("error: deleting password reset failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// DeleteStale removes rows created before the cutoff.
func (r *passwordResetRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Delete(models.PasswordReset{}.TableName()).
		Where(sq.Lt{"created_at": cutoff}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*passwordResetRepository.DeleteStale").Msg("error: building delete query failed")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*passwordResetRepository.DeleteStale").Msg("error: deleting stale rows failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return result.RowsAffected()
}
