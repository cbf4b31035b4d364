package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/stockpulse/stockpulse/internal/config"
	"github.com/stockpulse/stockpulse/internal/db"
	"github.com/stockpulse/stockpulse/internal/repo"
	"github.com/stockpulse/stockpulse/internal/ticker"
)

func main() {
	cfg := config.Load()

	initLogging(cfg.LogFormat)

	if cfg.IsProd() && cfg.JWTSecret == "supersecretkey" {
		slog.Error("JWT_SECRET must be set in prod")
		os.Exit(1)
	}

	// Keep retrying the database; the listener must not come up before the
	// pool is ready.
	database := db.ConnectWithRetry(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	defer database.Close()
	slog.Info("connected to database")

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		slog.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	tick := ticker.New(repo.NewStockRepo(database))
	if err := tick.Start(cfg.QuoteTickCron); err != nil {
		slog.Error("quote ticker failed to start", "cron", cfg.QuoteTickCron, "err", err)
		os.Exit(1)
	}
	defer tick.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(database, cfg),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  45 * time.Second,
	}

	slog.Info("starting server", "port", cfg.Port, "env", cfg.Env)
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func initLogging(format string) {
	if format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}
}
