package job

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/mvc/pkg/logger"
)

// Scheduler runs scheduled URLs and tasks in-process without a database.
// Each run is skipped while the previous one for the same entry is still
// running. It satisfies the app's Worker interface.
type Scheduler struct {
	cron     *cron.Cron
	logger   *slog.Logger
	observer Observer
	entries  int

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
}

// NewScheduler parses every schedule registered with WithSchedule or
// WithScheduledTask. Only those options and WithDispatcher, WithLogger and
// WithObserver apply.
func NewScheduler(opts ...Option) (*Scheduler, error) {
	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logger.NewNope()
	}

	s := &Scheduler{
		cron:     cron.New(cron.WithParser(cronParser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   cfg.logger,
		observer: cfg.observer,
		ctx:      context.Background(),
	}
	for _, sc := range cfg.schedules {
		sched, err := parseSchedule(sc.spec)
		if err != nil {
			return nil, err
		}
		s.cron.Schedule(sched, s.wrap(sc))
		s.entries++
	}
	return s, nil
}

func (s *Scheduler) wrap(sc schedule) cron.Job {
	return cron.FuncJob(func() {
		s.mu.Lock()
		ctx := s.ctx
		s.mu.Unlock()

		ctx = logger.WithAttrs(ctx, slog.String("schedule", sc.name))
		err := func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("job: panic in %s: %v", sc.name, r)
				}
			}()
			return sc.run(ctx)
		}()

		if err != nil {
			s.logger.ErrorContext(ctx, "scheduled job failed", slog.Any("error", err))
		} else {
			s.logger.DebugContext(ctx, "scheduled job completed")
		}
		if s.observer != nil {
			s.observer.ObserveJob(err)
		}
	})
}

// Start begins running schedules. ctx is not retained; runs use a context
// that is cancelled by Stop.
func (s *Scheduler) Start(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.cron.Start()
	s.started = true
	s.logger.Info("scheduler started", slog.Int("entries", s.entries))
	return nil
}

// Stop stops scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return ErrNotStarted
	}
	s.started = false
	cancel := s.cancel
	s.mu.Unlock()

	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		cancel()
		return ctx.Err()
	}
	cancel()
	s.logger.Info("scheduler stopped")
	return nil
}
