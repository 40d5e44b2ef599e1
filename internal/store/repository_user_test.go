package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tmaksat/newsauth/internal/logger"
	"github.com/tmaksat/newsauth/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRows(now time.Time) *sqlmock.Rows {
	return sqlmock.
		NewRows([]string{"user_id", "email", "full_name", "password_hash", "role", "is_active", "last_login", "created_at"}).
		AddRow(1, "john@example.com", "John Doe", "hash", "USER", true, nil, now)
}

func TestCreateFromPending_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	pending := models.PendingRegistration{
		Email:        "john@example.com",
		FullName:     "John Doe",
		PasswordHash: "hash",
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(pending.Email, pending.FullName, pending.PasswordHash, "USER").
		WillReturnRows(userRows(time.Now()))
	mock.ExpectExec("DELETE FROM pending_registrations").
		WithArgs(pending.Email).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := repo.CreateFromPending(ctx, pending, models.RoleUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if created.Email != pending.Email {
		t.Errorf("expected email %s, got %s", pending.Email, created.Email)
	}
	if created.Role != models.RoleUser {
		t.Errorf("expected role %s, got %s", models.RoleUser, created.Role)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateFromPending_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	pending := models.PendingRegistration{Email: "john@example.com"}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	_, err := repo.CreateFromPending(ctx, pending, models.RoleUser)
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateFromPending_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	pending := models.PendingRegistration{Email: "john@example.com"}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))
	mock.ExpectRollback()

	_, err := repo.CreateFromPending(ctx, pending, models.RoleUser)
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT user_id").
		WithArgs("john@example.com").
		WillReturnRows(userRows(time.Now()))

	found, err := repo.FindByEmail(ctx, "john@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", found.UserID)
	}
	if !found.IsActive {
		t.Error("expected active user")
	}
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT user_id").
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(ctx, "ghost@example.com")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindByEmail_UnknownRole(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.
		NewRows([]string{"user_id", "email", "full_name", "password_hash", "role", "is_active", "last_login", "created_at"}).
		AddRow(1, "john@example.com", "John Doe", "hash", "SUPERVISOR", true, nil, time.Now())

	mock.ExpectQuery("SELECT user_id").
		WithArgs("john@example.com").
		WillReturnRows(rows)

	_, err := repo.FindByEmail(ctx, "john@example.com")
	if err == nil {
		t.Fatal("expected error for unknown role, got nil")
	}
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT user_id").
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(ctx, 42)
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestUpdateLastLogin_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateLastLogin(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdatePasswordHash_NoRows(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WithArgs(int64(42), "newhash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePasswordHash(ctx, 42, "newhash")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestUpdatePasswordHash_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WithArgs(int64(1), "newhash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePasswordHash(ctx, 1, "newhash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
