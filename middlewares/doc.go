// Package middlewares provides net/http middlewares for mvc applications.
//
// # Request ID
//
// RequestID assigns a ULID to each request, or keeps one supplied upstream
// in X-Request-ID or X-Correlation-ID. Combine it with RequestIDExtractor so
// every log record carries the id:
//
//	app := mvc.New(
//	    mvc.WithLogger("web", middlewares.RequestIDExtractor()),
//	    mvc.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.AccessLog(log),
//	        middlewares.Recover(middlewares.WithRecoverLogger(log)),
//	    ),
//	)
//
// # Recover
//
// The dispatcher already converts controller panics into the JSON error
// envelope. Recover covers everything mounted beside it: health probes,
// static files and other middlewares.
//
// # Access log
//
// AccessLog writes one slog record per request with status, size and
// duration.
//
// # Recommended Middleware Order
//
//	mvc.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.AccessLog(log),
//	    middlewares.Recover(),
//	)
package middlewares
