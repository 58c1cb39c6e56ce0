package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	// PurchaseTotal counts sent purchases by gateway and outcome
	// (success, redirect, failure, error).
	PurchaseTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "omnipay_purchases_total",
			Help: "Total number of purchases sent to payment gateways",
		},
		[]string{"gateway", "outcome"},
	)
	PurchaseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "omnipay_purchase_duration_seconds",
			Help:    "Time spent sending a purchase to the gateway",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"gateway"},
	)
)

// NormalizePath keeps the first two path segments so ids do not explode
// label cardinality: /api/payments/42/purchase -> api/payments.
func NormalizePath(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return "root"
	}
	parts := strings.SplitN(p, "/", 3)
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, "/")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// Middleware records request count and latency for every path but /metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		duration := time.Since(start).Seconds()
		path := NormalizePath(r.URL.Path)
		status := strconv.Itoa(rec.Status())
		RequestTotal.WithLabelValues(r.Method, path, status).Inc()
		RequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}
