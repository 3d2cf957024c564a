package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc/pkg/cookie"
)

const testSecret = "this-is-a-32-byte-or-longer-key!"

// replay copies the cookies set on w into a new request.
func replay(t *testing.T, w *httptest.ResponseRecorder) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestManager_Plain(t *testing.T) {
	t.Parallel()

	m := cookie.New()

	t.Run("missing cookie", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := m.Get(r, "missing")
		require.ErrorIs(t, err, cookie.ErrNotFound)
		require.Empty(t, m.Value(r, "missing"))
	})

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		m.Set(w, "name", "value", 3600)

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Equal(t, "/", cookies[0].Path)
		require.True(t, cookies[0].HttpOnly)
		require.Equal(t, 3600, cookies[0].MaxAge)

		require.Equal(t, "value", m.Value(replay(t, w), "name"))
	})

	t.Run("delete expires cookie", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		m.Delete(w, "name")

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		require.Negative(t, cookies[0].MaxAge)
	})
}

func TestManager_Signed(t *testing.T) {
	t.Parallel()

	t.Run("requires secret", func(t *testing.T) {
		t.Parallel()
		m := cookie.New(cookie.WithSecret("short"))
		require.False(t, m.Signed())

		err := m.SetSigned(httptest.NewRecorder(), "sid", "abc", 0)
		require.ErrorIs(t, err, cookie.ErrNoSecret)
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		m := cookie.New(cookie.WithSecret(testSecret))
		w := httptest.NewRecorder()
		require.NoError(t, m.SetSigned(w, "sid", "abc", 0))

		got, err := m.GetSigned(replay(t, w), "sid")
		require.NoError(t, err)
		require.Equal(t, "abc", got)
	})

	t.Run("tampered value", func(t *testing.T) {
		t.Parallel()
		m := cookie.New(cookie.WithSecret(testSecret))
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "sid", Value: "YWJj.bm9wZQ"})

		_, err := m.GetSigned(r, "sid")
		require.ErrorIs(t, err, cookie.ErrBadSig)
	})

	t.Run("auto falls back to plain", func(t *testing.T) {
		t.Parallel()
		m := cookie.New()
		w := httptest.NewRecorder()
		m.SetAuto(w, "sid", "abc", 0)

		got, err := m.GetAuto(replay(t, w), "sid")
		require.NoError(t, err)
		require.Equal(t, "abc", got)
	})
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	_, err := cookie.FromConfig(cookie.Config{Secret: "short"})
	require.ErrorIs(t, err, cookie.ErrBadSecret)

	m, err := cookie.FromConfig(cookie.Config{Secret: testSecret, Domain: "example.com", Secure: true})
	require.NoError(t, err)
	require.True(t, m.Signed())

	w := httptest.NewRecorder()
	m.Set(w, "a", "b", 0)
	c := w.Result().Cookies()[0]
	require.True(t, c.Secure)
	require.Equal(t, "example.com", c.Domain)
}
