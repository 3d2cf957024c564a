package middlewares_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc/middlewares"
)

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("answers with the error envelope", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, nil))
		h := middlewares.Recover(middlewares.WithRecoverLogger(log))(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic("test panic")
			}),
		)

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.JSONEq(t, `{"success":false,"error":"panic: test panic"}`, rec.Body.String())
		require.Contains(t, buf.String(), "panic recovered")
		require.Contains(t, buf.String(), "stack")
	})

	t.Run("stack can be disabled", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := slog.New(slog.NewJSONHandler(&buf, nil))
		h := middlewares.Recover(
			middlewares.WithRecoverLogger(log),
			middlewares.WithRecoverDisablePrintStack(),
		)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NotContains(t, buf.String(), "stack")
	})

	t.Run("passes through when no panic", func(t *testing.T) {
		t.Parallel()

		h := middlewares.Recover()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestPanicError(t *testing.T) {
	t.Parallel()

	err := error(&middlewares.PanicError{Value: "x"})
	require.True(t, middlewares.IsPanicError(err))
	pe, ok := middlewares.AsPanicError(err)
	require.True(t, ok)
	require.Equal(t, "panic: x", pe.Error())
}
