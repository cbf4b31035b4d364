package models

import "time"

// Watchlist is the per-user container for tracked symbols. Exactly zero or
// one exists per user; it is created on the first add and persists even when
// all items have been removed.
type Watchlist struct {
	ID     int `json:"id"`
	UserID int `json:"userId"`
}

// WatchlistItem is a single tracked symbol. Items are immutable once added;
// the only mutations on a watchlist are append and remove.
type WatchlistItem struct {
	Symbol      string    `json:"symbol"`
	CompanyName string    `json:"companyName"`
	AddedAt     time.Time `json:"addedAt"`
}
