package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stockpulse/stockpulse/internal/metrics"
	"github.com/stockpulse/stockpulse/internal/middleware"
	"github.com/stockpulse/stockpulse/internal/service"
)

// ==========================
// Watchlist Handler
// ==========================
type WatchlistHandler struct {
	Service      *service.WatchlistService
	ExposeErrors bool
}

// ==========================
// Get Watchlist
// ==========================
func (h *WatchlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "Authentication required", nil, h.ExposeErrors)
		return
	}

	items, err := h.Service.List(r.Context(), userID)
	if err != nil {
		metrics.RecordWatchlistOp("list", "error")
		slog.Error("watchlist list failed", "user_id", userID, "err", err)
		JSONError(w, http.StatusInternalServerError, "Error fetching watchlist", err, h.ExposeErrors)
		return
	}

	metrics.RecordWatchlistOp("list", "ok")
	JSON(w, http.StatusOK, items)
}

// ==========================
// Add To Watchlist
// ==========================
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "Authentication required", nil, h.ExposeErrors)
		return
	}

	var input struct {
		Symbol      string `json:"symbol"`
		CompanyName string `json:"companyName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, http.StatusBadRequest, "Symbol and company name are required", err, h.ExposeErrors)
		return
	}
	if input.Symbol == "" || input.CompanyName == "" {
		JSONError(w, http.StatusBadRequest, "Symbol and company name are required", nil, h.ExposeErrors)
		return
	}

	items, err := h.Service.Add(r.Context(), userID, input.Symbol, input.CompanyName)
	if err != nil {
		metrics.RecordWatchlistOp("add", "error")
		switch {
		case errors.Is(err, service.ErrDuplicateSymbol):
			JSONError(w, http.StatusBadRequest, "Stock already in watchlist", nil, h.ExposeErrors)
		case errors.Is(err, service.ErrValidation):
			JSONError(w, http.StatusBadRequest, "Symbol and company name are required", nil, h.ExposeErrors)
		default:
			slog.Error("watchlist add failed", "user_id", userID, "symbol", input.Symbol, "err", err)
			JSONError(w, http.StatusInternalServerError, "Error adding to watchlist", err, h.ExposeErrors)
		}
		return
	}

	metrics.RecordWatchlistOp("add", "ok")
	JSON(w, http.StatusOK, items)
}

// ==========================
// Remove From Watchlist
// ==========================
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, http.StatusUnauthorized, "Authentication required", nil, h.ExposeErrors)
		return
	}

	symbol := chi.URLParam(r, "symbol")

	items, err := h.Service.Remove(r.Context(), userID, symbol)
	if err != nil {
		metrics.RecordWatchlistOp("remove", "error")
		if errors.Is(err, service.ErrWatchlistNotFound) {
			JSONError(w, http.StatusNotFound, "Watchlist not found", nil, h.ExposeErrors)
			return
		}
		slog.Error("watchlist remove failed", "user_id", userID, "symbol", symbol, "err", err)
		JSONError(w, http.StatusInternalServerError, "Error removing from watchlist", err, h.ExposeErrors)
		return
	}

	metrics.RecordWatchlistOp("remove", "ok")
	JSON(w, http.StatusOK, items)
}
