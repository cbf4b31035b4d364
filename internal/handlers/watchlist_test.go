package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stockpulse/stockpulse/internal/middleware"
	"github.com/stockpulse/stockpulse/internal/repo"
	"github.com/stockpulse/stockpulse/internal/service"
)

func newWatchlistHandler(t *testing.T) (*WatchlistHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	h := &WatchlistHandler{Service: service.NewWatchlistService(repo.NewWatchlistRepo(db))}
	return h, mock, func() { db.Close() }
}

func authedRequest(method, target string, body []byte, userID int) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestWatchlistHandler_Get_EmptyForNewUser(t *testing.T) {
	h, mock, done := newWatchlistHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, user_id FROM watchlists`).
		WithArgs(1).
		WillReturnError(sql.ErrNoRows)

	rr := httptest.NewRecorder()
	h.Get(rr, authedRequest("GET", "/api/watchlist", nil, 1))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rr.Code)
	}
	var items []map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty list, got: %v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestWatchlistHandler_Add_MissingFields(t *testing.T) {
	h, _, done := newWatchlistHandler(t)
	defer done()

	body, _ := json.Marshal(map[string]string{"symbol": "TCS"})
	rr := httptest.NewRecorder()
	h.Add(rr, authedRequest("POST", "/api/watchlist", body, 1))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
	var out map[string]string
	json.NewDecoder(rr.Body).Decode(&out)
	if out["message"] != "Symbol and company name are required" {
		t.Errorf("unexpected message: %q", out["message"])
	}
}

func TestWatchlistHandler_Add_Duplicate(t *testing.T) {
	h, mock, done := newWatchlistHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, user_id FROM watchlists`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(5, 1))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(5, "TCS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	body, _ := json.Marshal(map[string]string{"symbol": "TCS", "companyName": "Tata Consultancy"})
	rr := httptest.NewRecorder()
	h.Add(rr, authedRequest("POST", "/api/watchlist", body, 1))

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rr.Code)
	}
	var out map[string]string
	json.NewDecoder(rr.Body).Decode(&out)
	if out["message"] != "Stock already in watchlist" {
		t.Errorf("unexpected message: %q", out["message"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestWatchlistHandler_Remove_NotFound(t *testing.T) {
	h, mock, done := newWatchlistHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, user_id FROM watchlists`).
		WithArgs(1).
		WillReturnError(sql.ErrNoRows)

	r := chi.NewRouter()
	r.Delete("/api/watchlist/{symbol}", h.Remove)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, authedRequest("DELETE", "/api/watchlist/TCS", nil, 1))

	if rr.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rr.Code)
	}
	var out map[string]string
	json.NewDecoder(rr.Body).Decode(&out)
	if out["message"] != "Watchlist not found" {
		t.Errorf("unexpected message: %q", out["message"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestWatchlistHandler_Remove(t *testing.T) {
	h, mock, done := newWatchlistHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, user_id FROM watchlists`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(5, 1))
	mock.ExpectExec(`DELETE FROM watchlist_items`).
		WithArgs(5, "TCS").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT symbol, company_name, added_at`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"symbol", "company_name", "added_at"}).
			AddRow("INFY", "Infosys Ltd.", time.Now()))

	r := chi.NewRouter()
	r.Delete("/api/watchlist/{symbol}", h.Remove)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, authedRequest("DELETE", "/api/watchlist/TCS", nil, 1))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200: %s", rr.Code, rr.Body.String())
	}
	var items []struct {
		Symbol string `json:"symbol"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&items); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(items) != 1 || items[0].Symbol != "INFY" {
		t.Errorf("unexpected items: %+v", items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
