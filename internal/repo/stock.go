package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/stockpulse/stockpulse/internal/models"
)

// ==========================
// StockRepo
// ==========================
type StockRepo struct {
	DB *sql.DB
}

func NewStockRepo(db *sql.DB) *StockRepo {
	return &StockRepo{DB: db}
}

const stockColumns = `symbol, name, sector, price, previous_close, volume, market_cap,
	high_52_week, low_52_week, pe_ratio, eps, dividend, beta`

func scanStock(s *models.Stock, scan func(dest ...any) error) error {
	err := scan(&s.Symbol, &s.Name, &s.Sector, &s.Price, &s.PreviousClose, &s.Volume,
		&s.MarketCap, &s.High52Week, &s.Low52Week, &s.PERatio, &s.EPS, &s.Dividend, &s.Beta)
	if err != nil {
		return err
	}
	s.Change = s.Price - s.PreviousClose
	if s.PreviousClose != 0 {
		s.ChangePercent = s.Change / s.PreviousClose * 100
	}
	return nil
}

func (r *StockRepo) queryStocks(ctx context.Context, query string, args ...any) ([]models.Stock, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stocks := []models.Stock{}
	for rows.Next() {
		var s models.Stock
		if err := scanStock(&s, rows.Scan); err != nil {
			return nil, err
		}
		stocks = append(stocks, s)
	}
	return stocks, rows.Err()
}

// ==========================
// List (with filters)
// ==========================
// List returns stocks matching the optional filters. search matches symbol or
// name case-insensitively; empty or zero filter values mean "no filter".
func (r *StockRepo) List(ctx context.Context, search, sector string, minPrice, maxPrice float64) ([]models.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stocks
		WHERE ($1 = '' OR symbol ILIKE '%' || $1 || '%' OR name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR sector = $2)
		  AND ($3 <= 0 OR price >= $3)
		  AND ($4 <= 0 OR price <= $4)
		ORDER BY symbol`
	return r.queryStocks(ctx, query, search, sector, minPrice, maxPrice)
}

// ==========================
// Get By Symbol
// ==========================
func (r *StockRepo) GetBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	s := &models.Stock{}
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+stockColumns+` FROM stocks WHERE symbol = $1`, symbol)
	if err := scanStock(s, row.Scan); err != nil {
		return nil, err
	}
	return s, nil
}

// ==========================
// Top Movers
// ==========================
// TopGainers returns the limit stocks with the largest percentage gain.
func (r *StockRepo) TopGainers(ctx context.Context, limit int) ([]models.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stocks
		WHERE previous_close > 0
		ORDER BY (price - previous_close) / previous_close DESC
		LIMIT $1`
	return r.queryStocks(ctx, query, limit)
}

// TopLosers returns the limit stocks with the largest percentage loss.
func (r *StockRepo) TopLosers(ctx context.Context, limit int) ([]models.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stocks
		WHERE previous_close > 0
		ORDER BY (price - previous_close) / previous_close ASC
		LIMIT $1`
	return r.queryStocks(ctx, query, limit)
}

// ==========================
// Sectors
// ==========================
// Sectors aggregates average percentage change per sector.
func (r *StockRepo) Sectors(ctx context.Context) ([]models.SectorPerformance, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT sector, COUNT(*),
		       AVG((price - previous_close) / previous_close * 100)
		FROM stocks
		WHERE previous_close > 0
		GROUP BY sector
		ORDER BY sector`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.SectorPerformance{}
	for rows.Next() {
		var sp models.SectorPerformance
		if err := rows.Scan(&sp.Sector, &sp.StockCount, &sp.ChangePercent); err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

// ==========================
// Summary
// ==========================
func (r *StockRepo) Summary(ctx context.Context) (*models.MarketSummary, error) {
	sum := &models.MarketSummary{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FILTER (WHERE price > previous_close),
		       COUNT(*) FILTER (WHERE price < previous_close),
		       COUNT(*) FILTER (WHERE price = previous_close),
		       COALESCE(SUM(volume), 0)
		FROM stocks`).
		Scan(&sum.Advancing, &sum.Declining, &sum.Unchanged, &sum.TotalVolume)
	if err != nil {
		return nil, err
	}
	return sum, nil
}

// ==========================
// History
// ==========================
// History returns candles for symbol observed at or after since, oldest first.
func (r *StockRepo) History(ctx context.Context, symbol string, since time.Time) ([]models.Candle, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT observed, open, high, low, close, volume
		FROM stock_history
		WHERE symbol = $1 AND observed >= $2
		ORDER BY observed`, symbol, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candles := []models.Candle{}
	for rows.Next() {
		var c models.Candle
		if err := rows.Scan(&c.Date, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
			return nil, err
		}
		candles = append(candles, c)
	}
	return candles, rows.Err()
}

// ==========================
// Record Tick (quote ticker)
// ==========================
// RecordTick moves a stock to a new price and appends the matching history
// candle in one transaction.
func (r *StockRepo) RecordTick(ctx context.Context, symbol string, newPrice float64, volumeDelta int64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var oldPrice float64
	err = tx.QueryRowContext(ctx, `
		UPDATE stocks
		SET previous_close = price, price = $2, volume = volume + $3
		WHERE symbol = $1
		RETURNING previous_close`, symbol, newPrice, volumeDelta).
		Scan(&oldPrice)
	if err != nil {
		return err
	}

	high, low := oldPrice, newPrice
	if newPrice > high {
		high, low = newPrice, oldPrice
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO stock_history (symbol, open, high, low, close, volume)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		symbol, oldPrice, high, low, newPrice, volumeDelta)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Symbols returns all quoted symbols with their current price, for the ticker.
func (r *StockRepo) Symbols(ctx context.Context) (map[string]float64, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT symbol, price FROM stocks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var symbol string
		var price float64
		if err := rows.Scan(&symbol, &price); err != nil {
			return nil, err
		}
		out[symbol] = price
	}
	return out, rows.Err()
}
