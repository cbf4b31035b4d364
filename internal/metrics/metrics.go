package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// WatchlistOpsTotal counts watchlist operations by op (list, add, remove) and outcome (ok, error).
	WatchlistOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "watchlist_operations_total",
			Help: "Total number of watchlist operations by op and outcome",
		},
		[]string{"op", "outcome"},
	)

	// QuoteTicksTotal counts completed quote ticker runs.
	QuoteTicksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quote_ticks_total",
			Help: "Total number of completed quote ticker runs",
		},
	)

	// QuoteTickStocks is the number of stocks updated by the last ticker run.
	QuoteTickStocks = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "quote_tick_stocks",
			Help: "Number of stocks updated by the last quote ticker run",
		},
	)
)

var (
	symbolPathSegment = regexp.MustCompile(`/(stocks|watchlist)/[^/]+`)
	initOnce          sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, WatchlistOpsTotal, QuoteTicksTotal, QuoteTickStocks)
	})
}

// NormalizePath reduces cardinality by replacing symbol path segments with {symbol}.
// E.g. /api/stocks/TCS -> /api/stocks/{symbol}, /api/watchlist/INFY -> /api/watchlist/{symbol}.
func NormalizePath(path string) string {
	return symbolPathSegment.ReplaceAllString(path, "/$1/{symbol}")
}

// RecordRequest records duration and count for an HTTP request. Call from middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// RecordWatchlistOp counts one watchlist operation. outcome is "ok" or "error".
func RecordWatchlistOp(op, outcome string) {
	WatchlistOpsTotal.WithLabelValues(op, outcome).Inc()
}

// RecordQuoteTick records one completed ticker run over n stocks.
func RecordQuoteTick(n int) {
	QuoteTicksTotal.Inc()
	QuoteTickStocks.Set(float64(n))
}
