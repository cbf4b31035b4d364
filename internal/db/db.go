package db

import (
	"database/sql"
	"log/slog"
	"net/url"
	"time"

	_ "github.com/lib/pq"
)

// connectRetryDelay is the fixed pause between failed connection attempts.
const connectRetryDelay = 5 * time.Second

// Connect opens a connection pool to Postgres and verifies it with a ping.
// A connect_timeout of 10s is forced onto the DSN when not already present.
func Connect(databaseURL string, maxOpen, maxIdle int) (*sql.DB, error) {
	dsn := withConnectTimeout(databaseURL, "10")

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// ConnectWithRetry calls Connect until it succeeds, sleeping a fixed delay
// between attempts. The caller must not start listening for requests before
// this returns.
func ConnectWithRetry(databaseURL string, maxOpen, maxIdle int) *sql.DB {
	for {
		db, err := Connect(databaseURL, maxOpen, maxIdle)
		if err == nil {
			return db
		}
		slog.Error("database connection failed, retrying",
			"delay", connectRetryDelay.String(),
			"err", err)
		time.Sleep(connectRetryDelay)
	}
}

func withConnectTimeout(dsn, seconds string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return dsn
	}
	q := u.Query()
	if q.Get("connect_timeout") == "" {
		q.Set("connect_timeout", seconds)
		u.RawQuery = q.Encode()
	}
	return u.String()
}
