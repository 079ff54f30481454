package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/leshachaplin/capi-forwarder/internal/apierror"
	"github.com/leshachaplin/capi-forwarder/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "POST,OPTIONS")
		next.ServeHTTP(w, r)
	})
}

// requestLogger puts a logger tagged with the request id into the context and
// writes an access line. Bodies are never logged.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			l := logger.With().Str("request_id", requestID).Logger()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			ww.Header().Set(requestIDHeader, requestID)
			next.ServeHTTP(ww, r.WithContext(l.WithContext(r.Context())))

			l.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("handled request")
		})
	}
}

// requireConfig answers 500 before the body is read or the limiter is
// consulted when the Conversions API credentials are missing.
func (h *Handler) requireConfig(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h.conversions.Validate(); err != nil {
			h.metrics.Observe(metrics.ResultConfigError)
			h.error(r.Context(), w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				h.metrics.Observe(metrics.ResultRateLimited)
				h.error(r.Context(), w, apierror.NewAPIError("too many requests", http.StatusTooManyRequests))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
