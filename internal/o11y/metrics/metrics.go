package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes of one stdio line.
const (
	LineOK      = "ok"
	LineInvalid = "invalid"
	LineSkipped = "skipped"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timeserver_http_requests_total",
		Help: "Total number of HTTP requests by route and status code",
	}, []string{"method", "route", "code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "timeserver_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	}, []string{"method", "route"})

	StdioLinesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timeserver_stdio_lines_total",
		Help: "Total number of stdio protocol lines by outcome",
	}, []string{"outcome"})

	SnapshotsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timeserver_snapshots_total",
		Help: "Total number of time snapshots served by front end",
	}, []string{"frontend"})
)

// ObserveHTTP records one finished HTTP request.
func ObserveHTTP(method, route string, code int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveLine records the outcome of one stdio line.
func ObserveLine(outcome string) {
	StdioLinesTotal.WithLabelValues(outcome).Inc()
}

// ObserveSnapshot records one snapshot served by frontend ("http", "stdio", "mcp").
func ObserveSnapshot(frontend string) {
	SnapshotsTotal.WithLabelValues(frontend).Inc()
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
