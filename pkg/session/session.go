package session

import (
	"fmt"
	"html"
	"time"
)

// Session holds per-visitor values between requests.
type Session struct {
	CreatedAt time.Time      `json:"created_at"`
	ExpiresAt time.Time      `json:"expires_at"`
	Values    map[string]any `json:"values"`
	ID        string         `json:"id"`

	dirty     bool
	isNew     bool
	destroyed bool
}

// New creates a session that expires at expiresAt.
func New(id string, expiresAt time.Time) *Session {
	return &Session{
		ID:        id,
		Values:    make(map[string]any),
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
		isNew:     true,
	}
}

// Read returns the value stored under key, or nil.
func (s *Session) Read(key string) any {
	if s == nil || s.Values == nil {
		return nil
	}
	return s.Values[key]
}

// Write stores a value.
func (s *Session) Write(key string, val any) {
	if s.Values == nil {
		s.Values = make(map[string]any)
	}
	s.Values[key] = val
	s.dirty = true
}

// Delete removes a value. The session is only marked dirty if key existed.
func (s *Session) Delete(key string) {
	if _, ok := s.Values[key]; ok {
		delete(s.Values, key)
		s.dirty = true
	}
}

// Destroy drops every value; the manager removes the session and its cookie on save.
func (s *Session) Destroy() {
	clear(s.Values)
	s.destroyed = true
	s.dirty = true
}

// IsDirty reports unsaved changes.
func (s *Session) IsDirty() bool { return s.dirty }

// IsNew reports whether the session was created during this request.
func (s *Session) IsNew() bool { return s.isNew }

// IsDestroyed reports whether Destroy was called.
func (s *Session) IsDestroyed() bool { return s.destroyed }

// IsExpired reports whether the session is past its expiry at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

func (s *Session) markSaved() {
	s.dirty = false
	s.isNew = false
}

// Flash is a one-time message shown on the next rendered page.
type Flash struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

const flashPrefix = "flash-"

// SetFlash stores a flash message under key. Type is an alert style such
// as info, success, warning or danger; empty means info.
func (s *Session) SetFlash(message, typ, key string) {
	if typ == "" {
		typ = "info"
	}
	if key == "" {
		key = "message"
	}
	s.Write(flashPrefix+key, Flash{Message: message, Type: typ})
}

// PopFlash returns and removes the flash message stored under key.
func (s *Session) PopFlash(key string) (Flash, bool) {
	if s == nil {
		return Flash{}, false
	}
	if key == "" {
		key = "message"
	}
	raw, ok := s.Values[flashPrefix+key]
	if !ok {
		return Flash{}, false
	}
	s.Delete(flashPrefix + key)

	switch f := raw.(type) {
	case Flash:
		return f, true
	case map[string]any: // decoded from a serialized store
		msg, _ := f["message"].(string)
		typ, _ := f["type"].(string)
		return Flash{Message: msg, Type: typ}, true
	}
	return Flash{}, false
}

// RenderFlash pops the flash message under key and returns it as a
// bootstrap alert, or an empty string when there is none.
func (s *Session) RenderFlash(key string) string {
	f, ok := s.PopFlash(key)
	if !ok {
		return ""
	}
	return fmt.Sprintf(`<div class="alert alert-%s" role="alert">%s</div>`,
		html.EscapeString(f.Type), html.EscapeString(f.Message))
}

// Value returns the value under key as T.
func Value[T any](s *Session, key string) (T, error) {
	var zero T
	if s == nil {
		return zero, ErrNotFound
	}
	val, ok := s.Values[key]
	if !ok {
		return zero, ErrNotFound
	}
	typed, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("%w for key: %s", ErrTypeMismatch, key)
	}
	return typed, nil
}

// ValueOr returns the value under key as T, or def.
func ValueOr[T any](s *Session, key string, def T) T {
	val, err := Value[T](s, key)
	if err != nil {
		return def
	}
	return val
}
