// Package session stores per-visitor values between requests.
//
// A [Manager] reads the session id from a cookie (signed when the cookie
// manager has a secret), loads the [Session] from a [Store] and writes it
// back only when it changed. [CacheStore] keeps sessions in any
// cache.Cache, so the same code runs against memory in development and
// Redis in production:
//
//	store := session.NewCacheStore(cache.NewMemory[*session.Session]())
//	sessions := session.NewManager(store, session.WithCookies(cookies))
//
// Controllers reach the session through Controller.Session. Flash messages
// are shown once:
//
//	sess.SetFlash("Saved", "success", "")
//	html := sess.RenderFlash("") // <div class="alert alert-success" role="alert">Saved</div>
package session
