package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/leshachaplin/capi-forwarder/internal/apierror"
	"github.com/leshachaplin/capi-forwarder/internal/domain"
	"github.com/leshachaplin/capi-forwarder/internal/metrics"
)

// Preflight answers CORS probes. It never reaches the Conversions API.
func (h *Handler) Preflight(w http.ResponseWriter, r *http.Request) {
	h.metrics.Observe(metrics.ResultPreflight)
	if err := encodeJSONResponse(w, http.StatusOK, struct{}{}); err != nil {
		h.log(r.Context()).Error().Err(err).Msg("failed to write preflight response")
	}
}

func (h *Handler) Purchase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.metrics.Observe(metrics.ResultRejected)
			h.error(ctx, w, apierror.NewAPIError("payload too large", http.StatusRequestEntityTooLarge))
			return
		}
		h.metrics.Observe(metrics.ResultForwardError)
		h.error(ctx, w, apierror.NewForwardingError(err))
		return
	}

	event := domain.DecodeInboundEvent(data)
	client := domain.ClientInfo{
		UserAgent: r.Header.Get("User-Agent"),
		IPAddress: getClientIP(r, h.clientIPHeader),
	}

	start := time.Now()
	// a caller hanging up must not abort a send that may already be in flight
	meta, err := h.conversions.ForwardPurchase(context.WithoutCancel(ctx), event, client)
	if errors.Is(err, apierror.ErrConfiguration) {
		// nothing was sent, keep it out of the duration histogram
		h.metrics.Observe(metrics.ResultConfigError)
		h.error(ctx, w, err)
		return
	}
	h.metrics.ForwardDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		h.metrics.Observe(metrics.ResultForwardError)
		h.error(ctx, w, err)
		return
	}

	h.metrics.Observe(metrics.ResultSent)
	h.log(ctx).Debug().Object("event", event).Msg("purchase forwarded")

	if err = encodeJSONResponse(w, http.StatusOK, domain.ForwardResult{Sent: true, Meta: meta}); err != nil {
		h.log(ctx).Error().Err(err).Msg("failed to write response")
	}
}
