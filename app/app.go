package app

import (
	"context"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/leshachaplin/capi-forwarder/app/waiter"
	"github.com/leshachaplin/capi-forwarder/internal/config"
	"github.com/leshachaplin/capi-forwarder/internal/meta"
	"github.com/leshachaplin/capi-forwarder/internal/metrics"
	appServer "github.com/leshachaplin/capi-forwarder/internal/server/http"
	"github.com/leshachaplin/capi-forwarder/internal/service"
)

const sentryFlushTimeout = 2 * time.Second

type LoadConfigFn func() (config.Config, error)

type App struct {
	cfg      config.Config
	logger   zerolog.Logger
	server   *appServer.Server
	waiter   waiter.Waiter
	ctx      context.Context
	cancelFn context.CancelFunc
}

func New(loadConfigFn LoadConfigFn) *App {
	ctx, cancelFn := context.WithCancel(context.Background())
	cfg, err := loadConfigFn()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger := NewZeroLogger(Level(cfg.LogLevel))
	if err = cfg.Conversion.Validate(); err != nil {
		logger.Warn().Msg("conversions api credentials are not set, purchases will be rejected")
	}
	initSentry(cfg, logger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	graphClient := meta.New(cfg.GraphAPI, logger.With().Str("component", "graph_api").Logger())
	conversions := service.New(cfg.Conversion, graphClient)
	handler := appServer.NewHandler(conversions, metrics.New(registry), cfg.HTTP, logger)

	return &App{
		cfg:      cfg,
		logger:   logger,
		server:   appServer.New(handler, cfg.HTTP, registry, logger),
		waiter:   waiter.NewWaiter(ctx, cancelFn),
		ctx:      ctx,
		cancelFn: cancelFn,
	}
}

// Handler is the public router, shared by the HTTP server and the Lambda
// adapter.
func (a *App) Handler() http.Handler {
	return a.server.Routes()
}

func (a *App) Start() {
	defer a.cancelFn()

	a.waitForServer()

	if err := a.waiter.Wait(); err != nil {
		a.logger.Fatal().Err(err).Msg("App crash.")
	}
}

func (a *App) Stop() {
	a.cancelFn()
	sentry.Flush(sentryFlushTimeout)
}

func (a *App) waitForServer() {
	a.waiter.Add(func(ctx context.Context) error {
		defer a.logger.Debug().Msg("server has been shutdown")

		group, gCtx := errgroup.WithContext(ctx)
		group.Go(func() error {
			defer a.logger.Debug().Msg("public server exited")
			a.logger.Info().Str("addr", a.cfg.Addr).Msg("starting server")
			err := a.server.ServePublic(a.cfg.Addr)
			if err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		})

		group.Go(func() error {
			<-gCtx.Done()
			a.logger.Debug().Msg("shutting down the server")
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			if err := a.server.ShutdownPublic(ctx); err != nil {
				a.logger.Warn().Err(err).Msg("error while shutting down the server")
			}
			return nil
		})

		return group.Wait()
	})
}

func initSentry(cfg config.Config, logger zerolog.Logger) {
	if cfg.SentryDSN == "" {
		return
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.Environment,
		// requests carry hashed pii and the pixel id, keep them out of reports
		SendDefaultPII: false,
	}); err != nil {
		logger.Error().Err(err).Msg("sentry init failed")
	}
}
