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

// refreshTokenRepository is the PostgreSQL-backed implementation of
// [RefreshTokenRepository].
type refreshTokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRefreshTokenRepository constructs a [RefreshTokenRepository] backed by
// the provided database connection and logger.
func NewRefreshTokenRepository(db *DB, logger *logger.Logger) RefreshTokenRepository {
	logger.Debug().Msg("creating refresh token repository")
	return &refreshTokenRepository{
		db:     db,
		logger: logger,
	}
}

// Insert stores a freshly issued refresh token.
func (r *refreshTokenRepository) Insert(ctx context.Context, refreshToken models.RefreshToken) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, insertRefreshToken,
		refreshToken.Token, refreshToken.UserID, refreshToken.ExpiresAt)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.Insert").Msg("error: inserting refresh token failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// Rotate consumes the presented token value and stores the replacement in a
// single transaction. The conditional DELETE ... RETURNING is the rotation
// authority: of two concurrent rotations presenting the same value, exactly
// one sees the row; the other gets [ErrRefreshTokenNotFound].
//
// A row found past its stored expiry is still deleted (the commit keeps the
// cleanup) but the rotation fails with [ErrRefreshTokenNotFound], so an
// expired session cannot be extended.
func (r *refreshTokenRepository) Rotate(ctx context.Context, presented string, replacement models.RefreshToken) (int64, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.Rotate").Msg("error: cannot begin transaction")
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var (
		userID    int64
		expiresAt time.Time
	)
	row := tx.QueryRowContext(ctx, consumeRefreshToken, presented)
	if err := row.Scan(&userID, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrRefreshTokenNotFound
		}
		log.Err(err).Str("func", "*refreshTokenRepository.Rotate").Msg("error: consuming refresh token failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	if !expiresAt.After(time.Now()) {
		// Keep the delete of the dead row, refuse the rotation.
		if err := tx.Commit(); err != nil {
			log.Err(err).Str("func", "*refreshTokenRepository.Rotate").Msg("error: commit failed")
			return 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
		}
		return 0, ErrRefreshTokenNotFound
	}

	replacement.UserID = userID
	if _, err := tx.ExecContext(ctx, insertRefreshToken,
		replacement.Token, replacement.UserID, replacement.ExpiresAt); err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.Rotate").Msg("error: inserting replacement token failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.Rotate").Msg("error: commit failed")
		return 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return userID, nil
}

// Delete removes a single token value. Deleting an absent value is not an
// error, so logout stays idempotent.
func (r *refreshTokenRepository) Delete(ctx context.Context, tokenValue string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteRefreshToken, tokenValue); err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.Delete").Msg("error: deleting refresh token failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// DeleteAllForUser removes every token of the user and reports how many
// rows were dropped.
func (r *refreshTokenRepository) DeleteAllForUser(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteRefreshTokensForUser, userID)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.DeleteAllForUser").Msg("error: deleting user tokens failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return result.RowsAffected()
}

// DeleteExpired removes rows past their stored expiry.
func (r *refreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Delete(models.RefreshToken{}.TableName()).
		Where(sq.LtOrEq{"expires_at": now}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.DeleteExpired").Msg("error: building delete query failed")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.DeleteExpired").Msg("error: deleting expired tokens failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return result.RowsAffected()
}
