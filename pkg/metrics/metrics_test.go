package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc/pkg/metrics"
)

func TestCollector(t *testing.T) {
	t.Parallel()

	c := metrics.New(metrics.WithNamespace("test"))
	c.ObserveDispatch("posts", "index", http.StatusOK, 20*time.Millisecond)
	c.ObserveDispatch("posts", "index", http.StatusOK, 30*time.Millisecond)
	c.ObserveDispatch("posts", "view", http.StatusNotFound, time.Millisecond)
	c.ObserveJob(nil)
	c.ObserveJob(errors.New("x"))

	count, err := testutil.GatherAndCount(c.Registry(), "test_dispatches_total")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `test_dispatches_total{action="index",controller="posts",status="200"} 2`)
	require.Contains(t, string(body), `test_dispatch_duration_seconds_count{action="view",controller="posts"} 1`)
	require.Contains(t, string(body), `test_jobs_total{outcome="error"} 1`)
}
