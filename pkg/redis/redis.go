package redis

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds Redis connection settings.
// It is part of config.Config.
type Config struct {
	URL           string        `env:"REDIS_URL" yaml:"url"`
	PoolSize      int           `env:"REDIS_POOL_SIZE" envDefault:"10" yaml:"pool_size"`
	RetryAttempts int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3" yaml:"retry_attempts"`
	RetryInterval time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s" yaml:"retry_interval"`
}

// Enabled reports whether a URL is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}

// Option configures a Redis connection.
type Option func(*redis.Options, *retry)

type retry struct {
	attempts int
	interval time.Duration
}

// WithPoolSize sets the maximum number of connections in the pool.
func WithPoolSize(n int) Option {
	return func(o *redis.Options, _ *retry) {
		if n > 0 {
			o.PoolSize = n
		}
	}
}

// WithRetry configures connection attempts; the wait grows linearly with
// each attempt.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(_ *redis.Options, r *retry) {
		r.attempts = attempts
		r.interval = interval
	}
}

// Open connects to the Redis server at url (redis:// or rediss://) and pings it.
func Open(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrFailedToParseURL
	}

	ro, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}
	ro.PoolSize = 10
	ro.ConnMaxIdleTime = 10 * time.Minute
	ro.ReadTimeout = 3 * time.Second
	ro.WriteTimeout = 3 * time.Second
	ro.DialTimeout = 5 * time.Second

	rt := &retry{attempts: 3, interval: 2 * time.Second}
	for _, opt := range opts {
		opt(ro, rt)
	}

	return connect(ctx, ro, rt)
}

// OpenConfig connects using Config.
func OpenConfig(ctx context.Context, cfg Config) (redis.UniversalClient, error) {
	return Open(ctx, cfg.URL,
		WithPoolSize(cfg.PoolSize),
		WithRetry(cfg.RetryAttempts, cfg.RetryInterval),
	)
}

func connect(ctx context.Context, opts *redis.Options, rt *retry) (redis.UniversalClient, error) {
	attempts := max(rt.attempts, 1)

	var lastErr error
	for i := range attempts {
		client := redis.NewClient(opts)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrConnectionFailed, ctx.Err())
		case <-time.After(time.Duration(i+1) * rt.interval):
		}
	}

	return nil, errors.Join(ErrConnectionFailed, lastErr)
}

// Healthcheck returns a readiness check that pings the server.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown returns a shutdown hook that closes the client.
//
// Example:
//
//	app.Run(":8080", mvc.ShutdownHook(redis.Shutdown(client)))
func Shutdown(client io.Closer) func(ctx context.Context) error {
	return func(context.Context) error {
		return client.Close()
	}
}
