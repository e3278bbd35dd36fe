package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/taskfeed/taskfeed-go/internal/model"
)

func TestUserCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() unexpected error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`)).
		WithArgs("jane", "j@test.com", "hashed").
		WillReturnResult(sqlmock.NewResult(7, 1))

	repo := NewUserRepository(db)
	user := &model.User{Username: "jane", Email: "j@test.com", PasswordHash: "hashed"}

	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if user.ID != 7 {
		t.Errorf("Create() ID = %d, want 7", user.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() unexpected error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO users`)).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'j@test.com' for key 'uq_users_email'"))

	repo := NewUserRepository(db)
	user := &model.User{Username: "jane", Email: "j@test.com", PasswordHash: "hashed"}

	if err := repo.Create(context.Background(), user); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("Create() error = %v, want ErrDuplicateEmail", err)
	}
}

func TestUserGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() unexpected error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, email, password_hash, created_at FROM users WHERE email = ?`)).
		WithArgs("nobody@test.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}))

	repo := NewUserRepository(db)

	if _, err := repo.GetByEmail(context.Background(), "nobody@test.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetByEmail() error = %v, want ErrUserNotFound", err)
	}
}

func TestUserGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() unexpected error: %v", err)
	}
	defer db.Close()

	created := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, username, email, password_hash, created_at FROM users WHERE id = ?`)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(int64(7), "jane", "j@test.com", "hashed", created))

	repo := NewUserRepository(db)

	user, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID() unexpected error: %v", err)
	}
	if user.Username != "jane" || user.Email != "j@test.com" {
		t.Errorf("GetByID() = %+v", user)
	}
}

func TestIsDuplicateEntryError(t *testing.T) {
	if isDuplicateEntryError(nil) {
		t.Error("nil error should not be a duplicate entry error")
	}
	if isDuplicateEntryError(ErrUserNotFound) {
		t.Error("ErrUserNotFound should not be a duplicate entry error")
	}
	if !isDuplicateEntryError(errors.New("Error 1062: Duplicate entry")) {
		t.Error("expected duplicate entry error to be detected")
	}
}
