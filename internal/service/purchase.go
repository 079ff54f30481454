package service

import (
	"context"
	"encoding/json"

	"github.com/leshachaplin/capi-forwarder/internal/apierror"
	"github.com/leshachaplin/capi-forwarder/internal/domain"
)

// ForwardPurchase sends one purchase to the Conversions API and returns Meta's
// response body verbatim, whatever its status. event_time is taken here, when
// the payload is built, not when the request leaves.
func (s *Service) ForwardPurchase(
	ctx context.Context,
	event domain.InboundEvent,
	client domain.ClientInfo,
) (json.RawMessage, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	payload := domain.NewPurchasePayload(event, client, s.now())

	meta, err := s.sender.SendEvents(ctx, s.cfg.PixelID, s.cfg.AccessToken, payload)
	if err != nil {
		return nil, apierror.NewForwardingError(err)
	}
	return meta, nil
}
