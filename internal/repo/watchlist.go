package repo

import (
	"context"
	"database/sql"

	"github.com/stockpulse/stockpulse/internal/models"
)

// ==========================
// WatchlistRepo
// ==========================
// WatchlistRepo persists the one-watchlist-per-user model: a watchlists row
// per owner plus its items. The UNIQUE (watchlist_id, symbol) constraint is
// the backstop against races between concurrent adds of the same symbol.
type WatchlistRepo struct {
	DB *sql.DB
}

func NewWatchlistRepo(db *sql.DB) *WatchlistRepo {
	return &WatchlistRepo{DB: db}
}

// ==========================
// Get By User
// ==========================
// GetByUser loads a user's watchlist. Returns sql.ErrNoRows when the user has
// never added anything.
func (r *WatchlistRepo) GetByUser(ctx context.Context, userID int) (*models.Watchlist, error) {
	wl := &models.Watchlist{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id FROM watchlists WHERE user_id = $1`, userID).
		Scan(&wl.ID, &wl.UserID)
	if err != nil {
		return nil, err
	}
	return wl, nil
}

// ==========================
// Items
// ==========================
// Items returns a watchlist's items in insertion order.
func (r *WatchlistRepo) Items(ctx context.Context, watchlistID int) ([]models.WatchlistItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT symbol, company_name, added_at
		FROM watchlist_items
		WHERE watchlist_id = $1
		ORDER BY id`, watchlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.WatchlistItem{}
	for rows.Next() {
		var it models.WatchlistItem
		if err := rows.Scan(&it.Symbol, &it.CompanyName, &it.AddedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ==========================
// Has Symbol
// ==========================
// HasSymbol reports whether the watchlist already contains symbol
// (case-sensitive exact match).
func (r *WatchlistRepo) HasSymbol(ctx context.Context, watchlistID int, symbol string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM watchlist_items WHERE watchlist_id = $1 AND symbol = $2)`,
		watchlistID, symbol).Scan(&exists)
	return exists, err
}

// ==========================
// Add Item
// ==========================
// AddItem appends a symbol to the user's watchlist, creating the watchlist
// row on first use. Both statements run in one transaction so the document
// is written as a unit. A concurrent add of the same symbol surfaces as a
// unique violation (check with IsUniqueViolation).
func (r *WatchlistRepo) AddItem(ctx context.Context, userID int, symbol, companyName string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var watchlistID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO watchlists (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id`, userID).
		Scan(&watchlistID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO watchlist_items (watchlist_id, symbol, company_name)
		VALUES ($1, $2, $3)`, watchlistID, symbol, companyName)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// ==========================
// Remove Item
// ==========================
// RemoveItem deletes the matching symbol if present. Removing an absent
// symbol is not an error.
func (r *WatchlistRepo) RemoveItem(ctx context.Context, watchlistID int, symbol string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM watchlist_items WHERE watchlist_id = $1 AND symbol = $2`,
		watchlistID, symbol)
	return err
}
