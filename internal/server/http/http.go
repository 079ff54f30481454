package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	defaultClientIPHeader = "X-Nf-Client-Connection-Ip"
	defaultMaxBodyBytes   = 64 << 10
	defaultWriteTimeout   = 30 * time.Second
)

type Config struct {
	ClientIPHeader string        `env:"CLIENT_IP_HEADER" envDefault:"X-Nf-Client-Connection-Ip"`
	MaxBodyBytes   int64         `env:"MAX_BODY_BYTES" envDefault:"65536"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS" envDefault:"0"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"20"`
	WriteTimeout   time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
}

type Server struct {
	public       *http.Server
	publicRouter *chi.Mux
	routes       sync.Once

	handler  *Handler
	gatherer prometheus.Gatherer
	limiter  *rate.Limiter
	logger   zerolog.Logger
}

func New(handler *Handler, cfg Config, gatherer prometheus.Gatherer, logger zerolog.Logger) *Server {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}

	s := &Server{
		publicRouter: chi.NewRouter(),

		handler:  handler,
		gatherer: gatherer,
		logger:   logger,
	}
	if cfg.RateLimitRPS > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	s.public = &http.Server{
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// Routes returns the public router. Middlewares are applied on the first call
// only.
func (s *Server) Routes(mws ...func(http.Handler) http.Handler) http.Handler {
	s.routes.Do(func() {
		s.registerPublicRoutes(mws...)
	})
	return s.publicRouter
}

func (s *Server) ServePublic(addr string, mws ...func(http.Handler) http.Handler) error {
	s.public.Addr = addr
	s.public.Handler = s.Routes(mws...)

	return s.public.ListenAndServe()
}

func (s *Server) ShutdownPublic(ctx context.Context) error {
	if err := s.public.Shutdown(ctx); err != nil {
		return s.public.Close()
	}
	return nil
}

func (s *Server) registerPublicRoutes(middlewares ...func(http.Handler) http.Handler) {
	s.publicRouter.Use(middleware.Recoverer, requestLogger(s.logger), cors)
	s.publicRouter.Use(middlewares...)

	s.publicRouter.Get("/_/ready", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	s.publicRouter.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	purchase := []func(http.Handler) http.Handler{s.handler.requireConfig}
	if s.limiter != nil {
		purchase = append(purchase, s.handler.rateLimit(s.limiter))
	}
	s.publicRouter.Options("/*", s.handler.Preflight)
	s.publicRouter.With(purchase...).Post("/*", s.handler.Purchase)
}
