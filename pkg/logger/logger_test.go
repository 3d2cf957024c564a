package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc/pkg/logger"
)

type ctxKey struct{}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	extractor := func(ctx context.Context) (slog.Attr, bool) {
		v, ok := ctx.Value(ctxKey{}).(string)
		return slog.String("request_id", v), ok
	}
	log := logger.NewFromConfig(logger.Config{Level: "debug"}, &buf, extractor, nil)

	ctx := context.WithValue(context.Background(), ctxKey{}, "req-1")
	ctx = logger.WithAttrs(ctx, slog.String("controller", "posts"))
	ctx = logger.WithAttrs(ctx, slog.String("action", "index"))
	log.DebugContext(ctx, "hello", slog.Int("n", 1))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "hello", rec["msg"])
	require.Equal(t, "DEBUG", rec["level"])
	require.Equal(t, "req-1", rec["request_id"])
	require.Equal(t, "posts", rec["controller"])
	require.Equal(t, "index", rec["action"])
	require.InDelta(t, 1, rec["n"], 0)
}

func TestNewFromConfig_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewFromConfig(logger.Config{Level: "warn", Format: "text"}, &buf)
	log.Info("dropped")
	log.Warn("kept")

	require.NotContains(t, buf.String(), "dropped")
	require.Contains(t, buf.String(), "msg=kept")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	require.Equal(t, slog.LevelError, logger.ParseLevel("ERROR"))
	require.Equal(t, slog.LevelInfo, logger.ParseLevel("nonsense"))
	require.Equal(t, slog.LevelInfo, logger.ParseLevel(""))
}
