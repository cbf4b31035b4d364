package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

var userCols = []string{"id", "name", "email", "password_hash", "phone", "location", "bio", "created_at"}

func TestUserRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users \(name, email, password_hash\)`).
		WithArgs("Alice", "alice@example.com", "hashed").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "Alice", "alice@example.com", "hashed", "", "", "", time.Now()))

	repo := NewUserRepo(db)
	user, err := repo.Create(context.Background(), "Alice", "alice@example.com", "hashed")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID != 1 || user.Email != "alice@example.com" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Bob", "alice@example.com", "hashed").
		WillReturnError(&pq.Error{Code: "23505"})

	repo := NewUserRepo(db)
	_, err = repo.Create(context.Background(), "Bob", "alice@example.com", "hashed")
	if !IsUniqueViolation(err) {
		t.Errorf("expected unique violation, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email`).
		WithArgs("bob@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(2, "Bob", "bob@example.com", "hash", "555", "Mumbai", "trader", time.Now()))

	repo := NewUserRepo(db)
	user, err := repo.GetByEmail(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if user.ID != 2 || user.Location != "Mumbai" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email`).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepo(db)
	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_UpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE users`).
		WithArgs("Alice B", "alice@example.com", "555", "Pune", "investor", 1).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(1, "Alice B", "alice@example.com", "hash", "555", "Pune", "investor", time.Now()))

	repo := NewUserRepo(db)
	user, err := repo.UpdateProfile(context.Background(), 1, "Alice B", "alice@example.com", "555", "Pune", "investor")
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if user.Name != "Alice B" || user.Bio != "investor" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_UpdatePassword_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET password_hash`).
		WithArgs("newhash", 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewUserRepo(db)
	err = repo.UpdatePassword(context.Background(), 99, "newhash")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows for missing user, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
