package job

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Observer is notified after every executed job. *metrics.Collector implements it.
type Observer interface {
	ObserveJob(err error)
}

type schedule struct {
	name string
	spec string
	run  func(ctx context.Context) error
	// payload is what the periodic river job carries.
	payload json.RawMessage
	task    string
}

type config struct {
	registry   *taskRegistry
	queues     map[string]int
	logger     *slog.Logger
	dispatch   DispatchFunc
	observer   Observer
	schedules  []schedule
	maxWorkers int
}

func newConfig() *config {
	return &config{
		registry: newTaskRegistry(),
		queues:   make(map[string]int),
	}
}

// Option configures a Manager or a Scheduler.
type Option func(*config)

// WithDispatcher sets how URL jobs reach the application, usually
// HandlerDispatcher(app).
func WithDispatcher(fn DispatchFunc) Option {
	return func(c *config) { c.dispatch = fn }
}

// WithTask registers a typed task. P is the payload type Handle accepts:
//
//	type SendWelcome struct{ mailer *mailer.Mailer }
//
//	func (t *SendWelcome) Name() string { return "send_welcome" }
//	func (t *SendWelcome) Handle(ctx context.Context, p WelcomePayload) error { ... }
//
//	job.WithTask[WelcomePayload](&SendWelcome{mailer: m})
func WithTask[P any, T interface {
	Name() string
	Handle(context.Context, P) error
}](task T) Option {
	return func(c *config) {
		c.registry.register(task.Name(), typedTask[P, T]{task: task})
	}
}

// WithSchedule dispatches url on a cron schedule (five fields or a
// descriptor such as "@hourly").
func WithSchedule(spec, url string) Option {
	return func(c *config) {
		payload, _ := json.Marshal(urlPayload{URL: url})
		c.schedules = append(c.schedules, schedule{
			name:    url,
			spec:    spec,
			task:    DispatchTask,
			payload: payload,
			run: func(ctx context.Context) error {
				if c.dispatch == nil {
					return ErrNoDispatcher
				}
				return c.dispatch(ctx, url)
			},
		})
	}
}

// WithScheduledTask registers a periodic task:
//
//	func (t *Cleanup) Name() string     { return "cleanup_sessions" }
//	func (t *Cleanup) Schedule() string { return "0 * * * *" }
//	func (t *Cleanup) Handle(ctx context.Context) error { ... }
func WithScheduledTask[T interface {
	Name() string
	Schedule() string
	Handle(context.Context) error
}](task T) Option {
	return func(c *config) {
		c.registry.register(task.Name(), executorFunc(func(ctx context.Context, _ json.RawMessage) error {
			return task.Handle(ctx)
		}))
		c.schedules = append(c.schedules, schedule{
			name: task.Name(),
			spec: task.Schedule(),
			task: task.Name(),
			run:  task.Handle,
		})
	}
}

// WithQueue adds a named queue with its worker count.
func WithQueue(name string, workers int) Option {
	return func(c *config) {
		if workers > 0 {
			c.queues[name] = workers
		}
	}
}

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver reports every executed job to o.
func WithObserver(o Observer) Option {
	return func(c *config) { c.observer = o }
}

// WithMaxWorkers sets the worker count of the default queue. Default: 100.
func WithMaxWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxWorkers = n
		}
	}
}
