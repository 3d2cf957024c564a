package session

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/mvc/pkg/cache"
)

// Store persists sessions.
type Store interface {
	// Load returns the session with id or ErrNotFound.
	Load(ctx context.Context, id string) (*Session, error)

	// Save persists s until its expiry.
	Save(ctx context.Context, s *Session) error

	// Delete removes the session with id.
	Delete(ctx context.Context, id string) error
}

// CacheStore keeps sessions in a cache.Cache (memory or redis).
type CacheStore struct {
	cache cache.Cache[*Session]
}

// NewCacheStore creates a Store on top of c.
//
// Example:
//
//	store := session.NewCacheStore(cache.NewRedis[*session.Session](client, nil, cache.WithPrefix("sess")))
func NewCacheStore(c cache.Cache[*Session]) *CacheStore {
	return &CacheStore{cache: c}
}

func (s *CacheStore) Load(ctx context.Context, id string) (*Session, error) {
	sess, err := s.cache.Get(ctx, id)
	if errors.Is(err, cache.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if sess.Values == nil {
		sess.Values = make(map[string]any)
	}
	return sess, nil
}

func (s *CacheStore) Save(ctx context.Context, sess *Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return ErrExpired
	}
	return s.cache.Set(ctx, sess.ID, sess, ttl)
}

func (s *CacheStore) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, id)
}

var _ Store = (*CacheStore)(nil)
