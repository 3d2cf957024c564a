package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc/pkg/cache"
	"github.com/dmitrymomot/mvc/pkg/cookie"
	"github.com/dmitrymomot/mvc/pkg/session"
)

func TestSession_Values(t *testing.T) {
	t.Parallel()

	s := session.New("id", time.Now().Add(time.Hour))
	require.True(t, s.IsNew())
	require.False(t, s.IsDirty())
	require.Nil(t, s.Read("missing"))

	s.Write("user", "alice")
	require.True(t, s.IsDirty())
	require.Equal(t, "alice", s.Read("user"))

	name, err := session.Value[string](s, "user")
	require.NoError(t, err)
	require.Equal(t, "alice", name)

	_, err = session.Value[int](s, "user")
	require.ErrorIs(t, err, session.ErrTypeMismatch)
	require.Equal(t, 7, session.ValueOr(s, "missing", 7))

	s.Delete("user")
	require.Nil(t, s.Read("user"))
}

func TestSession_Flash(t *testing.T) {
	t.Parallel()

	t.Run("renders once", func(t *testing.T) {
		t.Parallel()
		s := session.New("id", time.Now().Add(time.Hour))
		s.SetFlash("Saved", "success", "")

		require.Equal(t, `<div class="alert alert-success" role="alert">Saved</div>`, s.RenderFlash(""))
		require.Empty(t, s.RenderFlash(""))
	})

	t.Run("defaults to info", func(t *testing.T) {
		t.Parallel()
		s := session.New("id", time.Now().Add(time.Hour))
		s.SetFlash("Hello", "", "greeting")

		f, ok := s.PopFlash("greeting")
		require.True(t, ok)
		require.Equal(t, session.Flash{Message: "Hello", Type: "info"}, f)
	})

	t.Run("decoded map form", func(t *testing.T) {
		t.Parallel()
		s := session.New("id", time.Now().Add(time.Hour))
		s.Write("flash-message", map[string]any{"message": "x<y", "type": "danger"})

		require.Equal(t, `<div class="alert alert-danger" role="alert">x&lt;y</div>`, s.RenderFlash("message"))
	})
}

func newManager(t *testing.T, opts ...session.Option) (*session.Manager, session.Store) {
	t.Helper()
	c := cache.NewMemory[*session.Session]()
	t.Cleanup(func() { _ = c.Close() })
	store := session.NewCacheStore(c)
	return session.NewManager(store, opts...), store
}

func TestManager_LoadSave(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("fresh session without cookie", func(t *testing.T) {
		t.Parallel()
		m, _ := newManager(t)

		s, err := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		require.True(t, s.IsNew())
		require.NotEmpty(t, s.ID)
	})

	t.Run("empty new session sets no cookie", func(t *testing.T) {
		t.Parallel()
		m, _ := newManager(t)

		s, err := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)

		w := httptest.NewRecorder()
		require.NoError(t, m.Save(ctx, w, s))
		require.Empty(t, w.Result().Cookies())
	})

	t.Run("round trip through signed cookie", func(t *testing.T) {
		t.Parallel()
		cookies := cookie.New(cookie.WithSecret("this-is-a-32-byte-or-longer-key!"))
		m, _ := newManager(t, session.WithCookies(cookies), session.WithCookieName("sid"))

		s, err := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		s.Write("user", "alice")

		w := httptest.NewRecorder()
		require.NoError(t, m.Save(ctx, w, s))
		set := w.Result().Cookies()
		require.Len(t, set, 1)
		require.Equal(t, "sid", set[0].Name)
		require.NotEqual(t, s.ID, set[0].Value, "cookie value is signed")

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(set[0])
		loaded, err := m.Load(r)
		require.NoError(t, err)
		require.False(t, loaded.IsNew())
		require.Equal(t, "alice", loaded.Read("user"))
	})

	t.Run("destroy deletes store entry and cookie", func(t *testing.T) {
		t.Parallel()
		m, store := newManager(t)

		s, err := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		s.Write("k", "v")
		require.NoError(t, m.Save(ctx, httptest.NewRecorder(), s))

		s.Destroy()
		w := httptest.NewRecorder()
		require.NoError(t, m.Save(ctx, w, s))
		require.Negative(t, w.Result().Cookies()[0].MaxAge)

		_, err = store.Load(ctx, s.ID)
		require.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("unknown id yields fresh session", func(t *testing.T) {
		t.Parallel()
		m, _ := newManager(t)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: m.CookieName(), Value: "does-not-exist"})
		s, err := m.Load(r)
		require.NoError(t, err)
		require.True(t, s.IsNew())
		require.NotEqual(t, "does-not-exist", s.ID)
	})
}
