package db

import "errors"

var (
	ErrFailedToParseDBConfig    = errors.New("db: failed to parse database configuration")
	ErrFailedToOpenDBConnection = errors.New("db: failed to open database connection")
	ErrUnknownDriver            = errors.New("db: unknown driver")
	ErrUnknownConnection        = errors.New("db: unknown connection")
	ErrNotPostgres              = errors.New("db: connection is not postgres")
	ErrHealthcheckFailed        = errors.New("db: healthcheck failed")
	ErrQuery                    = errors.New("db: query failed")
	ErrNoColumns                = errors.New("db: query returned no columns")
	ErrSetDialect               = errors.New("db migrator: failed to set dialect")
	ErrApplyMigrations          = errors.New("db migrator: failed to apply migrations")
)
