package middleware

import (
	"net"
	"net/http"
	"strings"

	"inkpost-service/internal/custom_errors"
	"inkpost-service/internal/delivery/http/httpjson"
	"inkpost-service/internal/metrics"
	"inkpost-service/internal/ratelimit"
)

// RateLimit rejects requests over the per-address quota with 429 before they
// reach the wrapped handler.
func RateLimit(limiter *ratelimit.Limiter, metrics metrics.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientAddress(r)) {
				metrics.IncrementRateLimitRejections()
				httpjson.WriteError(w, custom_errors.ErrRateLimitExceeded)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientAddress keys the limiter by the originating address: the first
// X-Forwarded-For hop when present, otherwise the connection's remote host.
func clientAddress(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
