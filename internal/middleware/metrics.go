package middleware

import (
	"net/http"
	"time"

	"github.com/patelhettt/vulninsights/internal/metrics"
)

// Metrics counts every request by route and status, static assets included.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)
			m.ObserveRequest(r.URL.Path, r.Method, rw.statusCode, time.Since(start))
		})
	}
}
