package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stockpulse/stockpulse/internal/repo"
)

func newService(t *testing.T) (*WatchlistService, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	return NewWatchlistService(repo.NewWatchlistRepo(db)), mock, func() { db.Close() }
}

func TestWatchlistService_List_NoWatchlist(t *testing.T) {
	svc, mock, done := newService(t)
	defer done()

	mock.ExpectQuery(`SELECT id, user_id FROM watchlists`).
		WithArgs(1).
		WillReturnError(sql.ErrNoRows)

	items, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("expected empty non-nil sequence, got: %#v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestWatchlistService_Add_FirstCreatesWatchlist(t *testing.T) {
	svc, mock, done := newService(t)
	defer done()

	mock.ExpectQuery(`SELECT id, user_id FROM watchlists`).
		WithArgs(1).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO watchlists`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec(`INSERT INTO watchlist_items`).
		WithArgs(5, "TCS", "Tata Consultancy Services Ltd.").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	// Add returns the updated sequence via List.
	mock.ExpectQuery(`SELECT id, user_id FROM watchlists`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(5, 1))
	mock.ExpectQuery(`SELECT symbol, company_name, added_at`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"symbol", "company_name", "added_at"}).
			AddRow("TCS", "Tata Consultancy Services Ltd.", time.Now()))

	items, err := svc.Add(context.Background(), 1, "TCS", "Tata Consultancy Services Ltd.")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(items) != 1 || items[0].Symbol != "TCS" {
		t.Errorf("unexpected items: %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestWatchlistService_Add_DuplicateSymbol(t *testing.T) {
	svc, mock, done := newService(t)
	defer done()

	mock.ExpectQuery(`SELECT id, user_id FROM watchlists`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(5, 1))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(5, "TCS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := svc.Add(context.Background(), 1, "TCS", "Tata Consultancy Services Ltd.")
	if !errors.Is(err, ErrDuplicateSymbol) {
		t.Errorf("expected ErrDuplicateSymbol, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

// Two concurrent adds can both pass the existence check; the store's unique
// constraint rejects the loser, which must still come back as DuplicateSymbol.
func TestWatchlistService_Add_RaceLoserGetsDuplicate(t *testing.T) {
	svc, mock, done := newService(t)
	defer done()

	mock.ExpectQuery(`SELECT id, user_id FROM watchlists`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(5, 1))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(5, "TCS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO watchlists`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec(`INSERT INTO watchlist_items`).
		WithArgs(5, "TCS", "Tata Consultancy Services Ltd.").
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err := svc.Add(context.Background(), 1, "TCS", "Tata Consultancy Services Ltd.")
	if !errors.Is(err, ErrDuplicateSymbol) {
		t.Errorf("expected ErrDuplicateSymbol, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestWatchlistService_Add_MissingFields(t *testing.T) {
	svc, _, done := newService(t)
	defer done()

	if _, err := svc.Add(context.Background(), 1, "", "Tata Consultancy Services Ltd."); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for empty symbol, got: %v", err)
	}
	if _, err := svc.Add(context.Background(), 1, "TCS", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for empty company name, got: %v", err)
	}
}

func TestWatchlistService_Remove_NoWatchlist(t *testing.T) {
	svc, mock, done := newService(t)
	defer done()

	mock.ExpectQuery(`SELECT id, user_id FROM watchlists`).
		WithArgs(9).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.Remove(context.Background(), 9, "TCS")
	if !errors.Is(err, ErrWatchlistNotFound) {
		t.Errorf("expected ErrWatchlistNotFound, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestWatchlistService_Remove_AbsentSymbolIsIdempotent(t *testing.T) {
	svc, mock, done := newService(t)
	defer done()

	mock.ExpectQuery(`SELECT id, user_id FROM watchlists`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(5, 1))
	mock.ExpectExec(`DELETE FROM watchlist_items`).
		WithArgs(5, "WIPRO").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT symbol, company_name, added_at`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"symbol", "company_name", "added_at"}).
			AddRow("TCS", "Tata Consultancy Services Ltd.", time.Now()))

	items, err := svc.Remove(context.Background(), 1, "WIPRO")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(items) != 1 || items[0].Symbol != "TCS" {
		t.Errorf("unexpected items: %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
