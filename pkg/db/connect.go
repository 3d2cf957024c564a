package db

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/dmitrymomot/mvc/pkg/logger"
)

// Connect establishes a PostgreSQL connection pool. Failed attempts are
// retried with a linearly growing delay.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	connConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	if cfg.MaxOpenConns > 0 {
		connConfig.MaxConns = cfg.MaxOpenConns
	}
	connConfig.MinConns = cfg.MinConns
	if cfg.HealthCheckPeriod > 0 {
		connConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	}
	if cfg.MaxConnIdleTime > 0 {
		connConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.MaxConnLifetime > 0 {
		connConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}

	var lastErr error
	attempts := max(cfg.RetryAttempts, 1)
	for i := range attempts {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
			case <-time.After(time.Duration(i) * cfg.RetryInterval):
			}
		}

		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err != nil {
			lastErr = err
			continue
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			lastErr = err
			continue
		}
		return pool, nil
	}

	return nil, errors.Join(ErrFailedToOpenDBConnection, lastErr)
}

// Open opens a connection described by cfg.
// A nil logger disables SQL logging.
func Open(ctx context.Context, cfg Config, log *slog.Logger) (*DB, error) {
	if log == nil {
		log = logger.NewNope()
	}

	switch cfg.Driver {
	case DriverPostgres, "pgx", "postgresql":
		pool, err := Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return newDB(stdlib.OpenDBFromPool(pool), pool, DriverPostgres, cfg.SQLLog, log), nil

	case DriverSQLite, "sqlite3":
		sqlDB, err := sql.Open("sqlite", cfg.DSN)
		if err != nil {
			return nil, errors.Join(ErrFailedToOpenDBConnection, err)
		}
		if cfg.DSN == ":memory:" || strings.Contains(cfg.DSN, "mode=memory") {
			// Every new connection would see an empty database.
			sqlDB.SetMaxOpenConns(1)
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, errors.Join(ErrFailedToOpenDBConnection, err)
		}
		return newDB(sqlDB, nil, DriverSQLite, cfg.SQLLog, log), nil
	}

	return nil, errors.Join(ErrUnknownDriver, errors.New(cfg.Driver))
}

// Healthcheck returns a readiness check that pings d.
func Healthcheck(d *DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := d.sql.PingContext(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
