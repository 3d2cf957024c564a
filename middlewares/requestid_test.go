package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc/middlewares"
)

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates new request ID when not present", func(t *testing.T) {
		t.Parallel()

		var captured string
		h := middlewares.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			captured = middlewares.GetRequestID(r.Context())
		}))

		rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Len(t, captured, 26)
		require.Equal(t, captured, rec.Header().Get("X-Request-ID"))
	})

	t.Run("uses existing request ID from header", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Correlation-ID", "upstream-123")

		rec := serve(middlewares.RequestID()(http.NotFoundHandler()), req)
		require.Equal(t, "upstream-123", rec.Header().Get("X-Request-ID"))
	})

	t.Run("custom generator and header", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.RequestID(
			middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
			middlewares.WithRequestIDResponseHeader("X-Trace"),
		)
		rec := serve(mw(http.NotFoundHandler()), httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, "fixed", rec.Header().Get("X-Trace"))
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	extract := middlewares.RequestIDExtractor()

	_, ok := extract(context.Background())
	require.False(t, ok)

	var attrValue string
	h := middlewares.RequestID(
		middlewares.WithRequestIDGenerator(func() string { return "abc" }),
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attr, ok := extract(r.Context())
		require.True(t, ok)
		require.Equal(t, "request_id", attr.Key)
		attrValue = attr.Value.String()
	}))
	serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "abc", attrValue)
}
