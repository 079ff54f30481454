package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/leshachaplin/capi-forwarder/internal/apierror"
	"github.com/leshachaplin/capi-forwarder/internal/domain"
)

//go:generate mockgen -source=processor.go -destination=mocks/processor_mock.go -package=mocks

// Config holds the Conversions API credentials. Both values are secrets.
type Config struct {
	PixelID     string `env:"META_PIXEL_ID"`
	AccessToken string `env:"META_CAPI_TOKEN"`
}

func (c Config) Validate() error {
	if c.PixelID == "" || c.AccessToken == "" {
		return apierror.NewConfigurationError()
	}
	return nil
}

type Sender interface {
	SendEvents(ctx context.Context, pixelID, accessToken string, payload domain.ConversionPayload) (json.RawMessage, error)
}

type Conversion interface {
	// Validate reports a configuration error when the credentials are missing.
	Validate() error
	ForwardPurchase(ctx context.Context, event domain.InboundEvent, client domain.ClientInfo) (json.RawMessage, error)
}

type Service struct {
	cfg    Config
	sender Sender
	now    func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(cfg Config, sender Sender, opts ...Option) *Service {
	s := &Service{
		cfg:    cfg,
		sender: sender,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Validate() error {
	return s.cfg.Validate()
}
