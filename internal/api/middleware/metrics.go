package middleware

import (
	"net/http"

	"github.com/modig-dev/insurance/internal/metrics"
)

// Metrics counts every request by method and final status code.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newStatusRecorder(w)
			next.ServeHTTP(rw, r)
			m.ObserveHTTPRequest(r.Method, rw.status)
		})
	}
}
