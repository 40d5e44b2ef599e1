package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/tmaksat/newsauth/internal/logger"
	"github.com/tmaksat/newsauth/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user account creation and lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateFromPending converts an in-flight signup into a persisted user and
// deletes the pending row inside one transaction, so verification never
// leaves both (or neither) behind.
//
// The INSERT is the authority on email uniqueness: a PostgreSQL
// unique_violation (23505) means a concurrent registration already created
// the account and maps to [ErrEmailAlreadyExists].
func (r *userRepository) CreateFromPending(ctx context.Context, pending models.PendingRegistration, role models.Role) (models.User, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateFromPending").Msg("error: cannot begin transaction")
		return models.User{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var user models.User
	row := tx.QueryRowContext(ctx, createUser, pending.Email, pending.FullName, pending.PasswordHash, role.String())
	if err := scanUser(row, &user); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.CreateFromPending").Msg("error: creating user failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if _, err := tx.ExecContext(ctx, deletePendingRegistration, pending.Email); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateFromPending").Msg("error: deleting pending registration failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateFromPending").Msg("error: commit failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return user, nil
}

// FindByEmail retrieves the user record owning the given email.
//
// Error handling:
//   - Empty result set → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, findUserByEmail, email)
	if err := scanUser(row, &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindByEmail").Msg("error: scanning user failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// FindByID retrieves the user record by primary key.
//
// Error handling mirrors [userRepository.FindByEmail].
func (r *userRepository) FindByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, findUserByID, userID)
	if err := scanUser(row, &user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository.FindByID").Msg("error: scanning user failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// UpdateLastLogin stamps the user's last successful login with the database
// clock.
func (r *userRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, updateUserLastLogin, userID); err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateLastLogin").Msg("error: updating last login failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// UpdatePasswordHash rewrites the stored credential hash.
// Returns [ErrNoUserWasFound] when the user id matches no row.
func (r *userRepository) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateUserPasswordHash, userID, passwordHash)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePasswordHash").Msg("error: updating password hash failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// scanner abstracts *sql.Row for single-row scans.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner, user *models.User) error {
	var role string
	if err := row.Scan(
		&user.UserID,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&role,
		&user.IsActive,
		&user.LastLogin,
		&user.CreatedAt,
	); err != nil {
		return err
	}

	parsed, err := models.ParseRole(role)
	if err != nil {
		return err
	}
	user.Role = parsed

	return nil
}
