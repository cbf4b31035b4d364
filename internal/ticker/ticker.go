// Package ticker drives the mock market: a cron job nudges every quoted
// price with a bounded random walk and records the move as a history candle.
// All price state lives in the database; nothing is shared in process memory
// between requests.
package ticker

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/robfig/cron/v3"
	"github.com/stockpulse/stockpulse/internal/metrics"
	"github.com/stockpulse/stockpulse/internal/repo"
)

// maxStepPercent bounds a single tick's price move to +/-1.5%.
const maxStepPercent = 1.5

type Ticker struct {
	Stocks *repo.StockRepo

	cron *cron.Cron
}

func New(stocks *repo.StockRepo) *Ticker {
	return &Ticker{Stocks: stocks}
}

// Start schedules ticks at the given cron spec (standard 5-field format) and
// begins running them in the background. Returns an error for an invalid spec.
func (t *Ticker) Start(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { t.Tick(context.Background()) }); err != nil {
		return err
	}
	c.Start()
	t.cron = c
	slog.Info("quote ticker started", "cron", spec)
	return nil
}

// Stop halts scheduling. A tick already in flight finishes.
func (t *Ticker) Stop() {
	if t.cron != nil {
		t.cron.Stop()
	}
}

// Tick walks every quoted symbol once. Failures on individual symbols are
// logged and skipped so one bad row cannot stall the whole market.
func (t *Ticker) Tick(ctx context.Context) {
	quotes, err := t.Stocks.Symbols(ctx)
	if err != nil {
		slog.Error("ticker: load symbols failed", "err", err)
		return
	}

	updated := 0
	for symbol, price := range quotes {
		newPrice := step(price)
		volume := int64(rand.Intn(500_000)) + 10_000
		if err := t.Stocks.RecordTick(ctx, symbol, newPrice, volume); err != nil {
			slog.Error("ticker: record tick failed", "symbol", symbol, "err", err)
			continue
		}
		updated++
	}

	metrics.RecordQuoteTick(updated)
	slog.Debug("quote tick complete", "stocks", updated)
}

// step applies one bounded random-walk move to price, never going below 1.
func step(price float64) float64 {
	pct := (rand.Float64()*2 - 1) * maxStepPercent
	next := price * (1 + pct/100)
	if next < 1 {
		next = 1
	}
	return next
}
