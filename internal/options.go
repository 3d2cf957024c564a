package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/mvc/pkg/health"
	"github.com/dmitrymomot/mvc/pkg/logger"
	"github.com/dmitrymomot/mvc/pkg/session"
)

// Option configures the application.
type Option func(*App)

// WithHome sets the route used for an empty path. Defaults to "/pages".
func WithHome(home string) Option {
	return func(a *App) {
		if home != "" {
			a.home = home
		}
	}
}

// WithTesting makes failed dispatches answer 200 so test clients can read
// the error envelope.
func WithTesting(on bool) Option {
	return func(a *App) {
		a.testing = on
	}
}

// WithDebug marks development mode, reported by App.Debug. Pass the same
// flag to the view engine to reload templates on every render.
func WithDebug(on bool) Option {
	return func(a *App) {
		a.debug = on
	}
}

// WithController registers a controller factory.
//
// Example:
//
//	mvc.WithController("posts", func() mvc.Handler { return &Posts{} })
func WithController(name string, f ControllerFactory) Option {
	return func(a *App) {
		a.registry.AddController(name, f)
	}
}

// WithModel registers a model loader.
//
// Example:
//
//	mvc.WithModel("post", func(c *mvc.Controller) (any, error) {
//	    conn, err := dbs.Get(c.Context(), "")
//	    if err != nil {
//	        return nil, err
//	    }
//	    return NewPostModel(conn), nil
//	})
func WithModel(name string, f LoaderFunc) Option {
	return func(a *App) {
		a.registry.AddModel(name, f)
	}
}

// WithComponent registers a component loader.
func WithComponent(name string, f LoaderFunc) Option {
	return func(a *App) {
		a.registry.AddComponent(name, f)
	}
}

// WithHelper registers a view helper.
func WithHelper(name string, f HelperFunc) Option {
	return func(a *App) {
		a.registry.AddHelper(name, f)
	}
}

// WithEngine sets the view engine.
func WithEngine(e Engine) Option {
	return func(a *App) {
		a.engine = e
	}
}

// WithMiddleware adds router middleware, applied in the order provided.
func WithMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	mvc.New(
//	    mvc.WithStaticFiles("/static/", assets, "public"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return func(a *App) {
		subFS, err := fs.Sub(fsys, subDir)
		if err != nil {
			panic(err)
		}

		fileServer := http.StripPrefix(strings.TrimSuffix(pattern, "/"), http.FileServerFS(subFS))

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				http.NotFound(w, r)
				return
			}

			w.Header().Set("Cache-Control", "public, max-age=3600")
			w.Header().Set("X-Content-Type-Options", "nosniff")

			fileServer.ServeHTTP(w, r)
		})

		a.staticRoutes = append(a.staticRoutes, staticRoute{handler, pattern})
	}
}

// WithErrorHandler replaces the JSON error envelope.
// Returning nil falls back to the envelope.
func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) {
		a.errorHandler = h
	}
}

// WithHealthChecks enables liveness and readiness endpoints.
//
// Example:
//
//	mvc.WithHealthChecks(
//	    mvc.WithReadinessCheck("db", dbs.Healthcheck("")),
//	    mvc.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
			checks:        make(health.Checks),
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// WithMetrics mounts h at /metrics and reports each dispatch to o.
// Either may be nil.
func WithMetrics(h http.Handler, o DispatchObserver) Option {
	return func(a *App) {
		a.metrics = h
		a.observer = o
	}
}

// WithLogger creates a JSON logger tagged with a component name.
// Extractors pull values such as the request id from the context.
func WithLogger(component string, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		a.logger = logger.New(extractors...).With("component", component)
	}
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithSessions enables controller sessions backed by m.
func WithSessions(m *session.Manager) Option {
	return func(a *App) {
		a.sessions = m
	}
}

// WithClock overrides the time source used for export file names.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		if now != nil {
			a.clock = now
		}
	}
}

// WithWorkers registers background workers started by Run.
func WithWorkers(w ...Worker) Option {
	return func(a *App) {
		a.workers = append(a.workers, w...)
	}
}
