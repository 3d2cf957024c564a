package job

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"slices"
	"sync"
)

// executor runs one task from its JSON payload.
type executor interface {
	Execute(ctx context.Context, payload json.RawMessage) error
}

type executorFunc func(ctx context.Context, payload json.RawMessage) error

func (f executorFunc) Execute(ctx context.Context, payload json.RawMessage) error {
	return f(ctx, payload)
}

type taskRegistry struct {
	executors map[string]executor
	mu        sync.RWMutex
}

func newTaskRegistry() *taskRegistry {
	return &taskRegistry{executors: make(map[string]executor)}
}

func (r *taskRegistry) register(name string, e executor) {
	r.mu.Lock()
	r.executors[name] = e
	r.mu.Unlock()
}

func (r *taskRegistry) get(name string) (executor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.executors[name]
	return e, ok
}

func (r *taskRegistry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.executors))
}

// typedTask decodes the payload into P before calling the task.
type typedTask[P any, T interface {
	Name() string
	Handle(context.Context, P) error
}] struct {
	task T
}

func (w typedTask[P, T]) Execute(ctx context.Context, raw json.RawMessage) error {
	var payload P
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &payload); err != nil {
			return errors.Join(ErrInvalidPayload, err)
		}
	}
	return w.task.Handle(ctx, payload)
}

// urlPayload is the payload of DispatchTask jobs.
type urlPayload struct {
	URL string `json:"url"`
}

func dispatchExecutor(dispatch DispatchFunc) executor {
	return executorFunc(func(ctx context.Context, raw json.RawMessage) error {
		if dispatch == nil {
			return ErrNoDispatcher
		}
		var p urlPayload
		if err := json.Unmarshal(raw, &p); err != nil || p.URL == "" {
			return errors.Join(ErrInvalidPayload, err)
		}
		return dispatch(ctx, p.URL)
	})
}
