// Package service holds the business rules the stores alone cannot enforce.
package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stockpulse/stockpulse/internal/models"
	"github.com/stockpulse/stockpulse/internal/repo"
)

var (
	// ErrValidation means symbol or company name was missing.
	ErrValidation = errors.New("symbol and company name are required")
	// ErrDuplicateSymbol means the symbol is already on the user's watchlist.
	ErrDuplicateSymbol = errors.New("stock already in watchlist")
	// ErrWatchlistNotFound means the user has no watchlist yet.
	ErrWatchlistNotFound = errors.New("watchlist not found")
)

// WatchlistService implements list/add/remove over a user's watchlist.
// Mutations for one user are not serialized; the store's compound unique
// constraint is the backstop when two adds of the same symbol race.
type WatchlistService struct {
	Repo *repo.WatchlistRepo
}

func NewWatchlistService(r *repo.WatchlistRepo) *WatchlistService {
	return &WatchlistService{Repo: r}
}

// List returns the user's items in insertion order. A user with no watchlist
// gets an empty sequence, not an error.
func (s *WatchlistService) List(ctx context.Context, userID int) ([]models.WatchlistItem, error) {
	wl, err := s.Repo.GetByUser(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.WatchlistItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.Repo.Items(ctx, wl.ID)
}

// Add appends a symbol, creating the watchlist on first use, and returns the
// updated item sequence. The duplicate check runs here first; if a concurrent
// add slips past it, the store's unique constraint rejects the second write
// and that too comes back as ErrDuplicateSymbol.
func (s *WatchlistService) Add(ctx context.Context, userID int, symbol, companyName string) ([]models.WatchlistItem, error) {
	if symbol == "" || companyName == "" {
		return nil, ErrValidation
	}

	wl, err := s.Repo.GetByUser(ctx, userID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// First add creates the watchlist.
	case err != nil:
		return nil, err
	default:
		exists, err := s.Repo.HasSymbol(ctx, wl.ID, symbol)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateSymbol
		}
	}

	if err := s.Repo.AddItem(ctx, userID, symbol, companyName); err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, ErrDuplicateSymbol
		}
		return nil, err
	}

	return s.List(ctx, userID)
}

// Remove deletes the symbol from the user's watchlist and returns the
// resulting sequence. Removing a symbol that is not present succeeds with an
// unchanged sequence; only a missing watchlist is an error.
func (s *WatchlistService) Remove(ctx context.Context, userID int, symbol string) ([]models.WatchlistItem, error) {
	wl, err := s.Repo.GetByUser(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWatchlistNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.Repo.RemoveItem(ctx, wl.ID, symbol); err != nil {
		return nil, err
	}

	return s.Repo.Items(ctx, wl.ID)
}
