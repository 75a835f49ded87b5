package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/omnibank/mortgage-service/internal/observability"
)

// Correlation propagates the caller's correlation headers into the request
// context, minting fresh identifiers when they are absent, and echoes the
// correlation ID on the response.
func Correlation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		correlationID := r.Header.Get(observability.HeaderCorrelationID)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}
		requestID := r.Header.Get(observability.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		w.Header().Set(observability.HeaderCorrelationID, correlationID)
		ctx := observability.WithCorrelation(r.Context(), correlationID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLogger logs one line per request with status and latency.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"correlation_id", observability.CorrelationID(r.Context()),
			)
		})
	}
}
