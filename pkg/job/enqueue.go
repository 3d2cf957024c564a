package job

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/riverqueue/river"
)

// taskArgs is the river job for every task; the registry picks the executor
// by TaskName.
type taskArgs struct {
	TaskName  string          `json:"task_name" river:"unique"`
	UniqueKey string          `json:"unique_key,omitempty" river:"unique"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

func (taskArgs) Kind() string { return "mvc:task" }

type enqueueConfig struct {
	scheduledAt time.Time
	queue       string
	uniqueKey   string
	tags        []string
	maxAttempts int
	uniqueFor   time.Duration
	priority    int
}

// EnqueueOption configures one enqueued job.
type EnqueueOption func(*enqueueConfig)

// InQueue puts the job on a named queue.
func InQueue(name string) EnqueueOption {
	return func(c *enqueueConfig) { c.queue = name }
}

// ScheduledAt delays the job until t.
func ScheduledAt(t time.Time) EnqueueOption {
	return func(c *enqueueConfig) { c.scheduledAt = t }
}

// ScheduledIn delays the job by d.
func ScheduledIn(d time.Duration) EnqueueOption {
	return func(c *enqueueConfig) { c.scheduledAt = time.Now().Add(d) }
}

// MaxAttempts limits retries. River's default is 25.
func MaxAttempts(n int) EnqueueOption {
	return func(c *enqueueConfig) { c.maxAttempts = n }
}

// UniqueFor skips the job when one with the same task and key was inserted
// within d. Without UniqueKey the task name alone is the key.
func UniqueFor(d time.Duration) EnqueueOption {
	return func(c *enqueueConfig) { c.uniqueFor = d }
}

// UniqueKey sets the deduplication key used with UniqueFor.
func UniqueKey(key string) EnqueueOption {
	return func(c *enqueueConfig) { c.uniqueKey = key }
}

// Priority sets the priority, 1 (highest) to 4.
func Priority(p int) EnqueueOption {
	return func(c *enqueueConfig) { c.priority = p }
}

// Tags labels the job.
func Tags(tags ...string) EnqueueOption {
	return func(c *enqueueConfig) { c.tags = append(c.tags, tags...) }
}

func buildJobArgs(name string, payload any, opts ...EnqueueOption) (*taskArgs, *river.InsertOpts, error) {
	args := &taskArgs{TaskName: name}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		args.Payload = raw
	}

	cfg := &enqueueConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	insert := &river.InsertOpts{
		Queue:       cfg.queue,
		ScheduledAt: cfg.scheduledAt,
		MaxAttempts: max(cfg.maxAttempts, 0),
		Priority:    max(cfg.priority, 0),
		Tags:        cfg.tags,
	}
	if cfg.uniqueFor > 0 {
		args.UniqueKey = cfg.uniqueKey
		insert.UniqueOpts = river.UniqueOpts{ByArgs: true, ByPeriod: cfg.uniqueFor}
	}
	return args, insert, nil
}
