package job

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/mvc/pkg/logger"
)

const defaultMaxWorkers = 100

// Manager processes jobs with River on Postgres. It satisfies the app's
// Worker interface, so mvc.WithWorkers starts and stops it with the server.
type Manager struct {
	*Enqueuer
	registry *taskRegistry
	logger   *slog.Logger

	mu      sync.Mutex
	started bool
}

// NewManager creates the River client. Jobs can be enqueued before Start.
func NewManager(pool *pgxpool.Pool, opts ...Option) (*Manager, error) {
	if pool == nil {
		return nil, ErrPoolRequired
	}

	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.NewNope()
	}
	cfg.registry.register(DispatchTask, dispatchExecutor(cfg.dispatch))

	queues := map[string]river.QueueConfig{
		river.QueueDefault: {MaxWorkers: cmpOr(cfg.maxWorkers, defaultMaxWorkers)},
	}
	for name, workers := range cfg.queues {
		queues[name] = river.QueueConfig{MaxWorkers: workers}
	}

	periodic, err := periodicJobs(cfg.schedules)
	if err != nil {
		return nil, err
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, &taskWorker{registry: cfg.registry, logger: cfg.logger, observer: cfg.observer})

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues:       queues,
		Workers:      workers,
		PeriodicJobs: periodic,
		Logger:       cfg.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("job: create client: %w", err)
	}

	return &Manager{
		Enqueuer: &Enqueuer{pool: pool, client: client, logger: cfg.logger},
		registry: cfg.registry,
		logger:   cfg.logger,
	}, nil
}

// Start begins processing jobs.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}
	if err := m.client.Start(ctx); err != nil {
		return fmt.Errorf("job: start client: %w", err)
	}
	m.started = true
	m.logger.Info("job manager started", slog.Any("tasks", m.registry.names()))
	return nil
}

// Stop waits for running jobs to finish.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return ErrNotStarted
	}
	if err := m.client.Stop(ctx); err != nil {
		return fmt.Errorf("job: stop client: %w", err)
	}
	m.started = false
	m.logger.Info("job manager stopped")
	return nil
}

// Enqueue inserts a job for a registered task.
func (m *Manager) Enqueue(ctx context.Context, name string, payload any, opts ...EnqueueOption) error {
	if _, ok := m.registry.get(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	return m.Enqueuer.Enqueue(ctx, name, payload, opts...)
}

// EnqueueTx inserts a job for a registered task within tx.
func (m *Manager) EnqueueTx(ctx context.Context, tx pgx.Tx, name string, payload any, opts ...EnqueueOption) error {
	if _, ok := m.registry.get(name); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	return m.Enqueuer.EnqueueTx(ctx, tx, name, payload, opts...)
}

type taskWorker struct {
	river.WorkerDefaults[taskArgs]
	registry *taskRegistry
	logger   *slog.Logger
	observer Observer
}

func (w *taskWorker) Work(ctx context.Context, job *river.Job[taskArgs]) error {
	err := runTask(ctx, w.registry, job.Args.TaskName, job.Args.Payload, w.logger,
		slog.Int64("job_id", job.ID),
		slog.Int("attempt", job.Attempt),
	)
	if w.observer != nil {
		w.observer.ObserveJob(err)
	}
	return err
}

func runTask(ctx context.Context, reg *taskRegistry, name string, payload []byte, log *slog.Logger, attrs ...slog.Attr) error {
	e, ok := reg.get(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}

	ctx = logger.WithAttrs(ctx, append(attrs, slog.String("task", name))...)
	start := time.Now()
	if err := e.Execute(ctx, payload); err != nil {
		log.ErrorContext(ctx, "task failed", slog.Any("error", err))
		return err
	}
	log.DebugContext(ctx, "task completed", slog.Duration("duration", time.Since(start)))
	return nil
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

func parseSchedule(spec string) (cron.Schedule, error) {
	s, err := cronParser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidSchedule, spec, err)
	}
	return s, nil
}

func periodicJobs(schedules []schedule) ([]*river.PeriodicJob, error) {
	jobs := make([]*river.PeriodicJob, 0, len(schedules))
	for _, s := range schedules {
		sched, err := parseSchedule(s.spec)
		if err != nil {
			return nil, err
		}
		args := &taskArgs{TaskName: s.task, Payload: s.payload}
		jobs = append(jobs, river.NewPeriodicJob(
			sched,
			func() (river.JobArgs, *river.InsertOpts) { return args, nil },
			&river.PeriodicJobOpts{RunOnStart: false},
		))
	}
	return jobs, nil
}

func cmpOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
