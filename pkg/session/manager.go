package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mvc/pkg/cookie"
)

// Config holds session settings.
// It is part of config.Config.
type Config struct {
	Name string        `env:"SESSION_NAME" envDefault:"session" yaml:"name"`
	TTL  time.Duration `env:"SESSION_TTL" envDefault:"720h" yaml:"ttl"`
}

// Manager loads sessions from a cookie token and persists them in a Store.
type Manager struct {
	store   Store
	cookies *cookie.Manager
	logger  *slog.Logger
	now     func() time.Time
	name    string
	ttl     time.Duration
}

// Option configures the Manager.
type Option func(*Manager)

// WithCookieName sets the cookie carrying the session id. Default: "session".
func WithCookieName(name string) Option {
	return func(m *Manager) {
		if name != "" {
			m.name = name
		}
	}
}

// WithTTL sets the session lifetime. Default: 30 days.
func WithTTL(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.ttl = d
		}
	}
}

// WithCookies sets the cookie manager. Its secret, when set, signs the session cookie.
func WithCookies(c *cookie.Manager) Option {
	return func(m *Manager) {
		if c != nil {
			m.cookies = c
		}
	}
}

// WithLogger sets the logger used for store failures.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// FromConfig returns options for cfg.
func FromConfig(cfg Config) []Option {
	return []Option{WithCookieName(cfg.Name), WithTTL(cfg.TTL)}
}

// NewManager creates a session manager backed by store.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		cookies: cookie.New(),
		logger:  slog.New(slog.DiscardHandler),
		now:     time.Now,
		name:    "session",
		ttl:     30 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CookieName returns the session cookie name.
func (m *Manager) CookieName() string {
	return m.name
}

// Load returns the session referenced by the request cookie. A missing,
// tampered, unknown or expired cookie yields a fresh session.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	ctx := r.Context()

	id, err := m.cookies.GetAuto(r, m.name)
	if err != nil || id == "" {
		return m.fresh(), nil
	}

	s, err := m.store.Load(ctx, id)
	switch {
	case errors.Is(err, ErrNotFound):
		return m.fresh(), nil
	case err != nil:
		return nil, err
	}

	if s.IsExpired(m.now()) {
		if err := m.store.Delete(ctx, s.ID); err != nil {
			m.logger.WarnContext(ctx, "failed to delete expired session", slog.String("error", err.Error()))
		}
		return m.fresh(), nil
	}
	return s, nil
}

// Save persists s and writes its cookie to w. Clean sessions are skipped;
// a new session without values is not stored.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if s == nil {
		return nil
	}

	if s.IsDestroyed() {
		if !s.IsNew() {
			if err := m.store.Delete(ctx, s.ID); err != nil {
				return err
			}
		}
		m.cookies.Delete(w, m.name)
		s.markSaved()
		return nil
	}

	if !s.IsDirty() || (s.IsNew() && len(s.Values) == 0) {
		return nil
	}

	wasNew := s.IsNew()
	if err := m.store.Save(ctx, s); err != nil {
		return err
	}
	if wasNew {
		m.cookies.SetAuto(w, m.name, s.ID, int(m.ttl.Seconds()))
	}
	s.markSaved()
	return nil
}

func (m *Manager) fresh() *Session {
	return New(uuid.NewString(), m.now().Add(m.ttl))
}
