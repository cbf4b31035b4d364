package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stockpulse/stockpulse/internal/repo"
)

// ==========================
// Stocks Handler
// ==========================
// Market data endpoints are public: quotes are mocked and carry nothing
// user-specific.
type StocksHandler struct {
	Stocks       *repo.StockRepo
	ExposeErrors bool
}

// ==========================
// List Stocks
// ==========================
func (h *StocksHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := q.Get("search")
	sector := q.Get("sector")
	minPrice := parseFloat(q.Get("min_price"))
	maxPrice := parseFloat(q.Get("max_price"))

	stocks, err := h.Stocks.List(r.Context(), search, sector, minPrice, maxPrice)
	if err != nil {
		slog.Error("stocks list failed", "err", err)
		JSONError(w, http.StatusInternalServerError, "Error fetching stocks", err, h.ExposeErrors)
		return
	}

	JSON(w, http.StatusOK, stocks)
}

// ==========================
// Get Stock
// ==========================
func (h *StocksHandler) Get(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	stock, err := h.Stocks.GetBySymbol(r.Context(), symbol)
	if err != nil {
		JSONError(w, http.StatusNotFound, "Stock not found", nil, h.ExposeErrors)
		return
	}

	JSON(w, http.StatusOK, stock)
}

// ==========================
// History
// ==========================
// historyRanges maps the range query parameter to a lookback window.
var historyRanges = map[string]time.Duration{
	"day":   24 * time.Hour,
	"week":  7 * 24 * time.Hour,
	"month": 30 * 24 * time.Hour,
	"year":  365 * 24 * time.Hour,
}

func (h *StocksHandler) History(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	// Unknown or missing range means "max": everything on record.
	since := time.Time{}
	if d, ok := historyRanges[r.URL.Query().Get("range")]; ok {
		since = time.Now().Add(-d)
	}

	if _, err := h.Stocks.GetBySymbol(r.Context(), symbol); err != nil {
		JSONError(w, http.StatusNotFound, "Stock not found", nil, h.ExposeErrors)
		return
	}

	candles, err := h.Stocks.History(r.Context(), symbol, since)
	if err != nil {
		slog.Error("history fetch failed", "symbol", symbol, "err", err)
		JSONError(w, http.StatusInternalServerError, "Error fetching history", err, h.ExposeErrors)
		return
	}

	JSON(w, http.StatusOK, candles)
}

// ==========================
// Market Overview
// ==========================
func (h *StocksHandler) Overview(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Stocks.Summary(r.Context())
	if err != nil {
		slog.Error("market summary failed", "err", err)
		JSONError(w, http.StatusInternalServerError, "Error fetching market overview", err, h.ExposeErrors)
		return
	}

	gainers, err := h.Stocks.TopGainers(r.Context(), 5)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "Error fetching market overview", err, h.ExposeErrors)
		return
	}

	losers, err := h.Stocks.TopLosers(r.Context(), 5)
	if err != nil {
		JSONError(w, http.StatusInternalServerError, "Error fetching market overview", err, h.ExposeErrors)
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"summary": summary,
		"gainers": gainers,
		"losers":  losers,
	})
}

// ==========================
// Sector Performance
// ==========================
func (h *StocksHandler) Sectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.Stocks.Sectors(r.Context())
	if err != nil {
		slog.Error("sector performance failed", "err", err)
		JSONError(w, http.StatusInternalServerError, "Error fetching sector performance", err, h.ExposeErrors)
		return
	}

	JSON(w, http.StatusOK, sectors)
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
