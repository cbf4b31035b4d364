package models

import "time"

// Stock is a quoted equity. Prices are mocked: a background ticker applies a
// bounded random walk, there is no real market feed.
type Stock struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Sector        string  `json:"sector"`
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"previousClose"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
	MarketCap     int64   `json:"marketCap"`
	High52Week    float64 `json:"high52Week"`
	Low52Week     float64 `json:"low52Week"`
	PERatio       float64 `json:"peRatio,omitempty"`
	EPS           float64 `json:"eps,omitempty"`
	Dividend      float64 `json:"dividend,omitempty"`
	Beta          float64 `json:"beta,omitempty"`
}

// Candle is one OHLCV observation in a stock's price history.
type Candle struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// SectorPerformance aggregates change across all stocks in one sector.
type SectorPerformance struct {
	Sector        string  `json:"sector"`
	StockCount    int     `json:"stockCount"`
	ChangePercent float64 `json:"changePercent"`
}

// MarketSummary is the dashboard headline: counts of stocks up and down plus
// total traded volume.
type MarketSummary struct {
	Advancing   int   `json:"advancing"`
	Declining   int   `json:"declining"`
	Unchanged   int   `json:"unchanged"`
	TotalVolume int64 `json:"totalVolume"`
}
