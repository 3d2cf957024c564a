// Package logger builds log/slog loggers for the framework and applications.
//
// Loggers write JSON (or text) records and add request-scoped attributes on
// every call. Two sources feed those attributes: [ContextExtractor]
// functions, such as middlewares.RequestIDExtractor, and values stored on
// the context with [WithAttrs]. The dispatcher uses the latter to tag
// records with the current controller and action.
//
//	log := logger.NewFromConfig(cfg.Log, os.Stdout, middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "post saved", slog.Int64("id", id))
//	// {"level":"INFO","msg":"post saved","id":7,"request_id":"01J...","controller":"posts","action":"save"}
//
// # Sentry
//
// When Config.Sentry.DSN is set, warnings are forwarded to Sentry as logs
// and errors create issues. Without a DSN only the local handler is used,
// so development and production share one code path. Call [FlushSentry]
// during shutdown so buffered events are delivered.
package logger
