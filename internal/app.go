package internal

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/mvc/pkg/health"
	"github.com/dmitrymomot/mvc/pkg/logger"
	"github.com/dmitrymomot/mvc/pkg/session"
)

// Server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// Worker is a background process started and stopped with the server.
type Worker interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// App owns the registry, the view engine and the HTTP router.
// It is immutable after New returns and safe for concurrent dispatches.
type App struct {
	router       chi.Router
	engine       Engine
	observer     DispatchObserver
	errorHandler ErrorHandler
	registry     *Registry
	logger       *slog.Logger
	sessions     *session.Manager
	healthConfig *healthConfig
	metrics      http.Handler
	clock        func() time.Time
	home         string
	middlewares  []func(http.Handler) http.Handler
	staticRoutes []staticRoute
	workers      []Worker
	testing      bool
	debug        bool
}

type staticRoute struct {
	handler http.Handler
	pattern string
}

// New creates an application.
//
// Example:
//
//	app := mvc.New(
//	    mvc.WithEngine(pongoview.New(views)),
//	    mvc.WithController("posts", func() mvc.Handler { return &Posts{} }),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:   chi.NewRouter(),
		registry: NewRegistry(),
		logger:   logger.NewNope(),
		clock:    time.Now,
		home:     DefaultHome,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.setupRoutes()
	return a
}

// Router returns the underlying router.
func (a *App) Router() chi.Router {
	return a.router
}

// Registry returns the factory registry.
func (a *App) Registry() *Registry {
	return a.registry
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Testing reports whether testing mode is on.
func (a *App) Testing() bool {
	return a.testing
}

// Debug reports whether debug mode is on.
func (a *App) Debug() bool {
	return a.debug
}

// Run starts the HTTP server and blocks until shutdown.
// Registered workers start before the listener and stop after it.
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.logger
	}

	startupHooks := cfg.startupHooks
	shutdownHooks := cfg.shutdownHooks
	for _, w := range a.workers {
		startupHooks = append(startupHooks, w.Start)
		shutdownHooks = append([]func(context.Context) error{w.Stop}, shutdownHooks...)
	}

	if addr == "" {
		addr = cfg.address
	}
	return runServer(runtimeConfig{
		handler:         a.router,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    startupHooks,
		shutdownHooks:   shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

func (a *App) setupRoutes() {
	for _, mw := range a.middlewares {
		a.router.Use(mw)
	}

	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath,
			health.ReadinessHandler(a.healthConfig.checks, health.WithLogger(a.logger)))
	}

	if a.metrics != nil {
		a.router.Handle("/metrics", a.metrics)
	}

	a.router.Handle("/", a)
	a.router.Handle("/*", a)
}

type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
//
// Example:
//
//	mvc.WithReadinessCheck("db", dbs.Healthcheck(""))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
