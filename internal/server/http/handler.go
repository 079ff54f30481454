package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"

	"github.com/leshachaplin/capi-forwarder/internal/apierror"
	"github.com/leshachaplin/capi-forwarder/internal/metrics"
	"github.com/leshachaplin/capi-forwarder/internal/service"
)

type Handler struct {
	conversions    service.Conversion
	metrics        *metrics.Metrics
	logger         zerolog.Logger
	clientIPHeader string
	maxBodyBytes   int64
}

func NewHandler(conversions service.Conversion, m *metrics.Metrics, cfg Config, logger zerolog.Logger) *Handler {
	if cfg.ClientIPHeader == "" {
		cfg.ClientIPHeader = defaultClientIPHeader
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}

	return &Handler{
		conversions:    conversions,
		metrics:        m,
		logger:         logger,
		clientIPHeader: cfg.ClientIPHeader,
		maxBodyBytes:   cfg.MaxBodyBytes,
	}
}

// log prefers the request scoped logger set by requestLogger.
func (h *Handler) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &h.logger
}

// error answers in plain text with the public message only. The cause goes
// to the log and, for forwarding failures, to Sentry.
func (h *Handler) error(ctx context.Context, w http.ResponseWriter, err error) {
	var apiErr apierror.Error
	if !errors.As(err, &apiErr) {
		apiErr = apierror.NewForwardingError(err)
	}

	l := h.log(ctx)
	switch apiErr.Kind {
	case apierror.KindRequest:
		l.Warn().Err(err).Int("status", apiErr.StatusCode()).Msg("request rejected")
	default:
		l.Error().Stack().Err(err).Str("kind", string(apiErr.Kind)).Msg("conversion failed")
	}
	if apiErr.Kind == apierror.KindForwarding {
		sentry.CaptureException(err)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(apiErr.StatusCode())
	if _, err = io.WriteString(w, apiErr.Message); err != nil {
		l.Error().Err(err).Msg("failed to write error response")
	}
}
