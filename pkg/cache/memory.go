package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memoryOptions struct {
	now             func() time.Time
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	maxEntries      int
}

// MemoryOption configures the in-memory cache.
type MemoryOption func(*memoryOptions)

// WithDefaultTTL sets the expiration used when Set receives a zero TTL.
// Default: DefaultTTL.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.defaultTTL = d
	}
}

// WithCleanupInterval sets how often expired entries are purged.
// Zero disables the background janitor. Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.cleanupInterval = d
	}
}

// WithMaxEntries bounds the cache size; the least recently used entry is
// evicted when the bound is reached. Zero means unlimited.
func WithMaxEntries(n int) MemoryOption {
	return func(o *memoryOptions) {
		o.maxEntries = n
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(o *memoryOptions) {
		if now != nil {
			o.now = now
		}
	}
}

type memoryEntry[V any] struct {
	validTo time.Time // zero = never expires
	value   V
	key     string
}

// Memory is a process-local cache with per-entry expiry and optional LRU bound.
type Memory[V any] struct {
	items map[string]*list.Element
	order *list.List // front = most recently used
	opts  memoryOptions
	done  chan struct{}
	mu    sync.Mutex

	closed bool
}

// NewMemory creates an in-memory cache.
//
// Example:
//
//	c := cache.NewMemory[string](cache.WithMaxEntries(10000))
//	defer c.Close()
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	o := memoryOptions{
		now:             time.Now,
		defaultTTL:      DefaultTTL,
		cleanupInterval: time.Minute,
	}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Memory[V]{
		items: make(map[string]*list.Element),
		order: list.New(),
		opts:  o,
		done:  make(chan struct{}),
	}
	if o.cleanupInterval > 0 {
		go m.janitor()
	}
	return m
}

func (m *Memory[V]) expired(e *memoryEntry[V]) bool {
	return !e.validTo.IsZero() && e.validTo.Before(m.opts.now())
}

// Get returns the value for key and marks it recently used.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	el, ok := m.items[key]
	if !ok {
		return zero, ErrNotFound
	}
	e := el.Value.(*memoryEntry[V])
	if m.expired(e) {
		m.remove(el)
		return zero, ErrNotFound
	}
	m.order.MoveToFront(el)
	return e.value, nil
}

// Set stores value under key.
func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.opts.defaultTTL
	}
	var validTo time.Time
	if ttl > 0 {
		validTo = m.opts.now().Add(ttl)
	}

	if el, ok := m.items[key]; ok {
		e := el.Value.(*memoryEntry[V])
		e.value, e.validTo = value, validTo
		m.order.MoveToFront(el)
		return nil
	}

	if m.opts.maxEntries > 0 && len(m.items) >= m.opts.maxEntries {
		if last := m.order.Back(); last != nil {
			m.remove(last)
		}
	}
	m.items[key] = m.order.PushFront(&memoryEntry[V]{key: key, value: value, validTo: validTo})
	return nil
}

// Delete removes key.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if el, ok := m.items[key]; ok {
		m.remove(el)
	}
	return nil
}

// Has reports whether key is present and not expired.
func (m *Memory[V]) Has(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.items[key]
	if !ok {
		return false, nil
	}
	if m.expired(el.Value.(*memoryEntry[V])) {
		m.remove(el)
		return false, nil
	}
	return true, nil
}

// Clear removes every entry.
func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	clear(m.items)
	m.order.Init()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close stops the janitor. It is safe to call more than once.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

func (m *Memory[V]) janitor() {
	t := time.NewTicker(m.opts.cleanupInterval)
	defer t.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-t.C:
			m.purge()
		}
	}
}

// purge drops expired entries.
func (m *Memory[V]) purge() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for el := m.order.Back(); el != nil; {
		prev := el.Prev()
		if m.expired(el.Value.(*memoryEntry[V])) {
			m.remove(el)
		}
		el = prev
	}
}

// remove unlinks el. Caller holds the mutex.
func (m *Memory[V]) remove(el *list.Element) {
	m.order.Remove(el)
	delete(m.items, el.Value.(*memoryEntry[V]).key)
}

var _ Cache[any] = (*Memory[any])(nil)
