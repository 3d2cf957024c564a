package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects level, format and the optional Sentry sink.
type Config struct {
	Level  string       `env:"LOG_LEVEL" envDefault:"info" yaml:"level"`   // debug, info, warn, error
	Format string       `env:"LOG_FORMAT" envDefault:"json" yaml:"format"` // json or text
	Sentry SentryConfig `yaml:"sentry"`
}

// New creates a JSON logger on stdout at info level.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewFromConfig(Config{}, os.Stdout, extractors...)
}

// NewFromConfig creates a logger writing to w. Records at or above
// cfg.Sentry.MinLevel are also sent to Sentry when a DSN is set.
func NewFromConfig(cfg Config, w io.Writer, extractors ...ContextExtractor) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	if sentryHandler, ok := newSentryHandler(cfg.Sentry, handler); ok {
		handler = fanout{handler, sentryHandler}
	}

	return slog.New(NewLogHandlerDecorator(handler, extractors...))
}

// ParseLevel maps a level name to slog.Level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
