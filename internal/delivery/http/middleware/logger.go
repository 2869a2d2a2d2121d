package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"inkpost-service/internal/logger"
	"inkpost-service/internal/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Logging records one structured line and one metrics sample per request.
func Logging(log *logger.Logger, metrics metrics.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			duration := time.Since(start)
			log.Info("HTTP request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", recorder.status),
				slog.Duration("duration", duration))

			metrics.IncrementHTTPRequests(r.Method, r.URL.Path, strconv.Itoa(recorder.status))
			metrics.RecordHTTPRequestDuration(r.Method, r.URL.Path, duration)
		})
	}
}
