package db

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultConnection is the name used when Get receives an empty name.
const DefaultConnection = "default"

// Registry holds named connection configs and opens them on first use.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	configs map[string]Config
	conns   map[string]*DB
	logger  *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger disables SQL logging.
func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		configs: make(map[string]Config),
		conns:   make(map[string]*DB),
		logger:  log,
	}
}

// Register adds or replaces the config for name.
// An already opened connection under that name is kept until Shutdown.
func (r *Registry) Register(name string, cfg Config) {
	if name == "" {
		name = DefaultConnection
	}
	r.mu.Lock()
	r.configs[name] = cfg
	r.mu.Unlock()
}

// Get returns the connection for name, opening it on first use.
func (r *Registry) Get(ctx context.Context, name string) (*DB, error) {
	if name == "" {
		name = DefaultConnection
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.conns[name]; ok {
		return d, nil
	}
	cfg, ok := r.configs[name]
	if !ok {
		return nil, errors.Join(ErrUnknownConnection, errors.New(name))
	}

	d, err := Open(ctx, cfg, r.logger)
	if err != nil {
		return nil, err
	}
	r.conns[name] = d
	return d, nil
}

// Pool returns the pgx pool of a postgres connection.
func (r *Registry) Pool(ctx context.Context, name string) (*pgxpool.Pool, error) {
	d, err := r.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if d.Pool() == nil {
		return nil, ErrNotPostgres
	}
	return d.Pool(), nil
}

// Healthcheck returns a readiness check for the named connection.
func (r *Registry) Healthcheck(name string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		d, err := r.Get(ctx, name)
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return Healthcheck(d)(ctx)
	}
}

// Shutdown closes every opened connection.
func (r *Registry) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for name, d := range r.conns {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if err := d.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(r.conns, name)
	}
	return errors.Join(errs...)
}
