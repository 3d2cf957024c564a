// Package cookie reads and writes HTTP cookies with shared attributes and
// optional HMAC signing.
//
// Plain cookies work without a secret:
//
//	m := cookie.New()
//	m.Set(w, "theme", "dark", 86400)
//	theme := m.Value(r, "theme")
//
// With a 32+ byte secret, signed cookies detect tampering:
//
//	m := cookie.New(cookie.WithSecret(os.Getenv("COOKIE_SECRET")))
//	_ = m.SetSigned(w, "sid", token, 0)
//	token, err := m.GetSigned(r, "sid") // ErrBadSig when modified
//
// GetAuto and SetAuto pick the signed variant whenever a secret is set;
// the session manager uses them for its token cookie.
package cookie
