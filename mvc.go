package mvc

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/mvc/internal"
	"github.com/dmitrymomot/mvc/pkg/health"
	"github.com/dmitrymomot/mvc/pkg/logger"
	"github.com/dmitrymomot/mvc/pkg/session"
)

// Type aliases - public API
type (
	// App owns the registry, the view engine and the HTTP router.
	App = internal.App

	// Controller is the embeddable base of every controller.
	Controller = internal.Controller

	// Handler is implemented by every struct embedding Controller.
	Handler = internal.Handler

	// BeforeFilter is an optional hook run before every action.
	BeforeFilter = internal.BeforeFilter

	// Action handles one URL; it receives the positional params.
	Action = internal.Action

	// Actions maps lowercased action names to actions.
	Actions = internal.Actions

	// ControllerFactory creates a fresh controller for one dispatch.
	ControllerFactory = internal.ControllerFactory

	// LoaderFunc creates a model or component for a controller.
	LoaderFunc = internal.LoaderFunc

	// HelperFunc creates a view helper.
	HelperFunc = internal.HelperFunc

	// Registry holds the named factories of an App.
	Registry = internal.Registry

	// Request is the controller, action and params parsed from a URL.
	Request = internal.Request

	// Response is the fully buffered result of a dispatch.
	Response = internal.Response

	// Vars is an insertion-ordered map of view variables.
	Vars = internal.Vars

	// Engine renders named templates.
	Engine = internal.Engine

	// EngineFunc adapts a function to Engine.
	EngineFunc = internal.EngineFunc

	// View is a template name bound to a snapshot of variables.
	View = internal.View

	// ViewData is what templates receive.
	ViewData = internal.ViewData

	// HTTPError carries the status and message sent to the client.
	HTTPError = internal.HTTPError

	// ErrorHandler replaces the default error envelope.
	ErrorHandler = internal.ErrorHandler

	// DispatchObserver is notified once per finished dispatch.
	DispatchObserver = internal.DispatchObserver

	// Worker is a background process started and stopped with the server.
	Worker = internal.Worker

	// Scalar lists the types Param and VarAs convert to.
	Scalar = internal.Scalar

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// ContextExtractor extracts a slog attribute from context.
	ContextExtractor = logger.ContextExtractor

	// Session is a per-visitor key/value store with flash messages.
	Session = session.Session
)

// Defaults.
const (
	DefaultHome   = internal.DefaultHome
	DefaultAction = internal.DefaultAction
	DefaultLayout = internal.DefaultLayout
)

// Errors.
var (
	ErrControllerNotFound = internal.ErrControllerNotFound
	ErrActionNotFound     = internal.ErrActionNotFound
	ErrModelNotFound      = internal.ErrModelNotFound
	ErrComponentNotFound  = internal.ErrComponentNotFound
	ErrHelperNotFound     = internal.ErrHelperNotFound
	ErrViewNotFound       = internal.ErrViewNotFound
	ErrNoEngine           = internal.ErrNoEngine
	ErrTooManyRedirects   = internal.ErrTooManyRedirects
	ErrURLMissing         = internal.ErrURLMissing
	ErrStartup            = internal.ErrStartup
)

// Constructors

// New creates an application. The App is immutable after creation.
//
// Example:
//
//	app := mvc.New(
//	    mvc.WithEngine(pongoview.New(views)),
//	    mvc.WithController("posts", func() mvc.Handler { return &Posts{} }),
//	    mvc.WithModel("post", func(c *mvc.Controller) (any, error) {
//	        return NewPostModel(dbs), nil
//	    }),
//	)
//
//	err := app.Run(":8080")
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// RunCLI dispatches the single URL in args and writes the body to stdout.
//
// Example:
//
//	if err := mvc.RunCLI(ctx, app, flag.Args(), os.Stdout); err != nil {
//	    os.Exit(1)
//	}
func RunCLI(ctx context.Context, app *App, args []string, stdout io.Writer) error {
	return internal.RunCLI(ctx, app, args, stdout)
}

// ParseURL splits a path into controller, action and params. The empty
// path resolves to home.
func ParseURL(rawURL, home string) (controller, action string, params []string) {
	return internal.ParseURL(rawURL, home)
}

// NewVars creates an empty variable map.
func NewVars() *Vars {
	return internal.NewVars()
}

// NewResponse creates an empty response.
func NewResponse(status int) *Response {
	return internal.NewResponse(status)
}

// ErrorResponse builds the {"success":false,"error":...} envelope for err.
func ErrorResponse(err error, testing bool) *Response {
	return internal.ErrorResponse(err, testing)
}

// Generic helpers

// Model returns the named model loaded for c as T.
//
// Example:
//
//	posts, err := mvc.Model[*PostModel](&p.Controller, "post")
func Model[T any](c *Controller, name string) (T, error) {
	return internal.Model[T](c, name)
}

// Component returns the named component loaded for c as T.
func Component[T any](c *Controller, name string) (T, error) {
	return internal.Component[T](c, name)
}

// Param returns the i-th positional parameter converted to T.
//
// Example:
//
//	id := mvc.Param[int64](p.Request, 0)
func Param[T Scalar](r *Request, i int) T {
	return internal.Param[T](r, i)
}

// VarAs returns a GET or POST variable converted to T.
func VarAs[T Scalar](r *Request, key string) T {
	return internal.VarAs[T](r, key)
}

// VarDefault returns a typed variable, or defaultValue when it is missing.
func VarDefault[T Scalar](r *Request, key string, defaultValue T) T {
	return internal.VarDefault(r, key, defaultValue)
}

// Errors

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string) *HTTPError {
	return internal.NewHTTPError(code, message)
}

// Errorf creates an HTTPError with a formatted message.
func Errorf(code int, format string, args ...any) *HTTPError {
	return internal.Errorf(code, format, args...)
}

// Wrap attaches a status to err.
func Wrap(code int, err error) *HTTPError {
	return internal.Wrap(code, err)
}

// ErrBadRequest creates a 400 error.
func ErrBadRequest(message string) *HTTPError {
	return internal.ErrBadRequest(message)
}

// ErrForbidden creates a 403 error.
func ErrForbidden(message string) *HTTPError {
	return internal.ErrForbidden(message)
}

// ErrNotFound creates a 404 error.
func ErrNotFound(message string) *HTTPError {
	return internal.ErrNotFound(message)
}

// ErrInternal creates a 500 error.
func ErrInternal(message string) *HTTPError {
	return internal.ErrInternal(message)
}

// AsHTTPError finds an HTTPError in err's chain.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// App options

// WithHome sets the URL dispatched for "/". Default: "/pages".
func WithHome(home string) Option {
	return internal.WithHome(home)
}

// WithTesting makes every error answer 200 with the envelope.
func WithTesting(on bool) Option {
	return internal.WithTesting(on)
}

// WithDebug marks development mode, reported by App.Debug.
func WithDebug(on bool) Option {
	return internal.WithDebug(on)
}

// WithController registers a controller factory under name.
func WithController(name string, f ControllerFactory) Option {
	return internal.WithController(name, f)
}

// WithModel registers a model loader under name.
func WithModel(name string, f LoaderFunc) Option {
	return internal.WithModel(name, f)
}

// WithComponent registers a component loader under name.
func WithComponent(name string, f LoaderFunc) Option {
	return internal.WithComponent(name, f)
}

// WithHelper registers a view helper under name.
func WithHelper(name string, f HelperFunc) Option {
	return internal.WithHelper(name, f)
}

// WithEngine sets the view engine.
func WithEngine(e Engine) Option {
	return internal.WithEngine(e)
}

// WithMiddleware adds net/http middleware around every route.
func WithMiddleware(mw ...func(http.Handler) http.Handler) Option {
	return internal.WithMiddleware(mw...)
}

// WithStaticFiles serves fsys (or its subDir) under pattern.
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithErrorHandler replaces the error envelope.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithHealthChecks mounts liveness and readiness endpoints.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithMetrics mounts h at /metrics and reports each dispatch to o.
func WithMetrics(h http.Handler, o DispatchObserver) Option {
	return internal.WithMetrics(h, o)
}

// WithLogger creates a JSON logger tagged with a component name.
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// WithSessions enables controller sessions backed by m.
func WithSessions(m *session.Manager) Option {
	return internal.WithSessions(m)
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return internal.WithClock(now)
}

// WithWorkers registers background workers started by Run.
func WithWorkers(w ...Worker) Option {
	return internal.WithWorkers(w...)
}

// Health options

// WithLivenessPath sets the liveness endpoint. Default: "/health/live".
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets the readiness endpoint. Default: "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Address sets the listen address used when Run gets an empty one.
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Logger sets the server logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout bounds graceful shutdown. Default: 30s.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// ShutdownHook runs fn after the server has drained.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// StartupHook runs fn before the listener opens.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// WithContext sets the base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}
