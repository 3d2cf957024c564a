// Package cache provides a generic TTL cache with in-memory and Redis backends.
//
// Both backends implement [Cache]; controllers and the session store depend on
// the interface so development can run on [Memory] and production on [Redis].
//
// TTL semantics for Set:
//   - Positive duration: the entry expires after this duration
//   - Zero: the backend default ([DefaultTTL], one year, unless overridden)
//   - Negative: the entry never expires
//
// # Usage
//
//	c := cache.NewMemory[string]()
//	defer c.Close()
//
//	_ = c.Set(ctx, "greeting", "hello", 10*time.Minute)
//	if v, ok := cache.Read[string](ctx, c, "greeting"); ok {
//	    fmt.Println(v)
//	}
//
// [GetOrSet] deduplicates concurrent misses with singleflight:
//
//	user, err := cache.GetOrSet(ctx, c, "user:42", func(ctx context.Context) (User, time.Duration, error) {
//	    u, err := repo.Find(ctx, 42)
//	    return u, time.Hour, err
//	})
package cache
