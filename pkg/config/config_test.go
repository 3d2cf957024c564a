package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc/pkg/config"
	"github.com/dmitrymomot/mvc/pkg/db"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, "/pages", cfg.App.Home)
	require.False(t, cfg.App.Testing)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	require.Equal(t, "session", cfg.Session.Name)
	require.Equal(t, "postgres", cfg.DB.Driver)
	require.Equal(t, "noreply@localhost", cfg.Mail.From)
	require.Equal(t, slog.LevelWarn, cfg.Log.Sentry.MinLevel)
	require.Equal(t, 100, cfg.Jobs.MaxWorkers)
	require.Empty(t, cfg.Connections())
}

func TestLoad_File(t *testing.T) {
	t.Parallel()

	path := writeFile(t, `
app:
  home: /dashboard/index
  debug: true
server:
  shutdown_timeout: 5s
db:
  driver: sqlite
  dsn: ":memory:"
  sql_log: true
databases:
  reports:
    driver: sqlite
    dsn: reports.db
session:
  name: sid
jobs:
  schedules:
    /reports/rebuild: "@hourly"
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "/dashboard/index", cfg.App.Home)
	require.True(t, cfg.App.Debug)
	require.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	require.Equal(t, ":8080", cfg.Server.Addr, "defaults survive a partial file")
	require.Equal(t, "sqlite", cfg.DB.Driver)
	require.True(t, cfg.DB.SQLLog)
	require.Equal(t, "sid", cfg.Session.Name)
	require.Equal(t, map[string]string{"/reports/rebuild": "@hourly"}, cfg.Jobs.Schedules)

	conns := cfg.Connections()
	require.Len(t, conns, 2)
	require.Equal(t, ":memory:", conns[db.DefaultConnection].DSN)
	require.Equal(t, "reports.db", conns["reports"].DSN)
}

// Not parallel: t.Setenv.
func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "app:\n  home: /from/file\nsession:\n  name: sid\n")
	t.Setenv("APP_HOME", "/from/env")
	t.Setenv("APP_TESTING", "true")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "/from/env", cfg.App.Home)
	require.True(t, cfg.App.Testing)
	require.Equal(t, "sid", cfg.Session.Name)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, config.ErrReadFile)

	_, err = config.Load(writeFile(t, "app: [unclosed\n"))
	require.ErrorIs(t, err, config.ErrParse)

	require.Panics(t, func() { config.MustLoad(filepath.Join(t.TempDir(), "missing.yaml")) })
}
