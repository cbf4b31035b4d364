package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stockpulse/stockpulse/internal/config"
	"github.com/stockpulse/stockpulse/internal/handlers"
	"github.com/stockpulse/stockpulse/internal/middleware"
	"github.com/stockpulse/stockpulse/internal/repo"
	"github.com/stockpulse/stockpulse/internal/service"
	"github.com/stockpulse/stockpulse/internal/token"
)

// newRouter wires repositories, services and handlers onto the chi router.
// Registration and login are the only API routes outside the auth gate.
func newRouter(database *sql.DB, cfg config.Config) http.Handler {
	userRepo := repo.NewUserRepo(database)
	watchlistRepo := repo.NewWatchlistRepo(database)
	stockRepo := repo.NewStockRepo(database)

	issuer := token.NewIssuer([]byte(cfg.JWTSecret), time.Duration(cfg.JWTExpireHours)*time.Hour)
	watchlistSvc := service.NewWatchlistService(watchlistRepo)

	expose := !cfg.IsProd()
	authH := &handlers.AuthHandler{Users: userRepo, Tokens: issuer, ExposeErrors: expose}
	profileH := &handlers.ProfileHandler{Users: userRepo, ExposeErrors: expose}
	watchlistH := &handlers.WatchlistHandler{Service: watchlistSvc, ExposeErrors: expose}
	stocksH := &handlers.StocksHandler{Stocks: stockRepo, ExposeErrors: expose}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(false))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Login and register are rate limited per IP and bypass the auth gate.
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthRateLimiter().Middleware)
			r.Post("/auth/register", authH.Register)
			r.Post("/auth/login", authH.Login)
		})

		// Market data is public.
		r.Get("/stocks", stocksH.List)
		r.Get("/stocks/{symbol}", stocksH.Get)
		r.Get("/stocks/{symbol}/history", stocksH.History)
		r.Get("/market/overview", stocksH.Overview)
		r.Get("/market/sectors", stocksH.Sectors)

		// Everything else requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(issuer))
			r.Get("/profile", profileH.Get)
			r.Put("/profile", profileH.Update)
			r.Put("/profile/password", profileH.UpdatePassword)
			r.Get("/watchlist", watchlistH.Get)
			r.Post("/watchlist", watchlistH.Add)
			r.Delete("/watchlist/{symbol}", watchlistH.Remove)
		})
	})

	return r
}
