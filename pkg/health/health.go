package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/mvc/pkg/logger"
)

const (
	defaultTimeout = 5 * time.Second

	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc reports whether one dependency is usable.
// db.Healthcheck, redis.Healthcheck and db.Registry.Healthcheck return one.
type CheckFunc func(ctx context.Context) error

// Checks maps check names to functions.
type Checks map[string]CheckFunc

// Report is the outcome of one readiness run.
type Report struct {
	Checks map[string]Result `json:"checks,omitempty"`
	Status string            `json:"status"`
}

// Healthy reports whether every check passed.
func (r *Report) Healthy() bool {
	return r.Status == StatusHealthy
}

// Result is the outcome of one check.
type Result struct {
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Duration string `json:"duration"`
}

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures a Checker.
type Option func(*config)

// WithTimeout bounds the whole run. Default: 5s.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger logs failed checks at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Checker runs a fixed set of checks concurrently.
type Checker struct {
	checks Checks
	cfg    config
}

// New creates a Checker.
func New(checks Checks, opts ...Option) *Checker {
	cfg := config{timeout: defaultTimeout, logger: logger.NewNope()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Checker{checks: maps.Clone(checks), cfg: cfg}
}

// Run executes every check and collects the results.
func (c *Checker) Run(ctx context.Context) *Report {
	report := &Report{Status: StatusHealthy}
	if len(c.checks) == 0 {
		return report
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	var mu sync.Mutex
	report.Checks = make(map[string]Result, len(c.checks))

	// Checks never fail the group, so one failure does not cancel the rest.
	var g errgroup.Group
	for name, check := range c.checks {
		g.Go(func() error {
			start := time.Now()
			err := check(ctx)
			if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				err = errors.Join(ErrCheckTimeout, err)
			}

			res := Result{Status: StatusHealthy, Duration: time.Since(start).String()}
			if err != nil {
				res.Status = StatusUnhealthy
				res.Error = err.Error()
				c.cfg.logger.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}

			mu.Lock()
			report.Checks[name] = res
			if err != nil {
				report.Status = StatusUnhealthy
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return report
}

// Check runs every check and returns ErrCheckFailed naming the failed ones.
func (c *Checker) Check(ctx context.Context) error {
	report := c.Run(ctx)
	if report.Healthy() {
		return nil
	}
	var errs []error
	for _, name := range slices.Sorted(maps.Keys(report.Checks)) {
		if res := report.Checks[name]; res.Status != StatusHealthy {
			errs = append(errs, fmt.Errorf("%s: %s", name, res.Error))
		}
	}
	return errors.Join(append([]error{ErrCheckFailed}, errs...)...)
}
