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

	"github.com/trailhead-app/trailhead/internal/logger"
	"github.com/trailhead-app/trailhead/models"
)

var userRowColumns = []string{
	"id", "name", "email", "password_hash", "role", "password_changed_at",
	"password_reset_token_hash", "password_reset_expires_at", "active", "created_at",
}

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

func userRow(id int64, name, email string) *sqlmock.Rows {
	return sqlmock.NewRows(userRowColumns).
		AddRow(id, name, email, "$2a$12$hash", "user", nil, nil, nil, true, time.Now())
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: "$2a$12$hash",
		Role:         models.RoleUser,
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Name, user.Email, user.PasswordHash, user.Role).
		WillReturnRows(userRow(1, user.Name, user.Email))

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected ID=1, got %d", created.ID)
	}
	if !created.Active {
		t.Error("expected freshly created user to be active")
	}
}

func TestCreateUser_EmailAlreadyExists(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "ada@example.com"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), models.User{})
	if err == nil || !strings.Contains(err.Error(), "unexpected DB error") {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ada@example.com").
		WillReturnRows(userRow(7, "Ada", "ada@example.com"))

	user, err := repo.FindUserByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 7 {
		t.Errorf("expected ID=7, got %d", user.ID)
	}
	if user.PasswordHash == "" {
		t.Error("expected password hash to be loaded for credential checks")
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindActiveUserByID_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindActiveUserByID(context.Background(), 42)
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE users").
		WithArgs("Ada L.", "ada@example.org", int64(7)).
		WillReturnRows(userRow(7, "Ada L.", "ada@example.org"))

	user, err := repo.UpdateProfile(context.Background(), 7, "Ada L.", "ada@example.org")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "Ada L." || user.Email != "ada@example.org" {
		t.Errorf("unexpected profile values: %q %q", user.Name, user.Email)
	}
}

func TestUpdateProfile_EmailConflict(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.UpdateProfile(context.Background(), 7, "Ada", "taken@example.com")
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestUpdatePassword_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	changed := time.Now()
	rows := sqlmock.NewRows(userRowColumns).
		AddRow(7, "Ada", "ada@example.com", "$2a$12$newhash", "user", changed, nil, nil, true, time.Now())

	mock.ExpectQuery("UPDATE users").
		WithArgs("$2a$12$newhash", int64(7)).
		WillReturnRows(rows)

	user, err := repo.UpdatePassword(context.Background(), 7, "$2a$12$newhash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.PasswordChangedAt == nil {
		t.Fatal("expected password_changed_at to be stamped")
	}
	if user.PasswordResetTokenHash != nil || user.PasswordResetExpiresAt != nil {
		t.Error("expected reset token fields to be cleared")
	}
}

func TestUpdatePassword_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE users").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdatePassword(context.Background(), 99, "$2a$12$newhash")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestSetResetToken_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	expiresAt := time.Now().Add(10 * time.Minute)

	mock.ExpectExec("UPDATE users").
		WithArgs("digest", expiresAt, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetResetToken(context.Background(), 7, "digest", expiresAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetResetToken_NoMatchingUser(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetResetToken(context.Background(), 99, "digest", time.Now())
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByResetTokenDigest_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("stale-digest").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByResetTokenDigest(context.Background(), "stale-digest")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestDeactivate_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Deactivate(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeactivate_AlreadyInactive(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Deactivate(context.Background(), 7)
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}
