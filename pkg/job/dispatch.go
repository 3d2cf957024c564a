package job

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
)

// DispatchTask is the task name used for URL jobs.
const DispatchTask = "dispatch"

// DispatchFunc runs one URL through the application.
type DispatchFunc func(ctx context.Context, url string) error

// HandlerDispatcher dispatches URLs as GET requests to h, which is usually
// the mvc App. Responses with status 400 or above fail the job so it is
// retried.
func HandlerDispatcher(h http.Handler) DispatchFunc {
	return func(ctx context.Context, url string) error {
		if !strings.HasPrefix(url, "/") {
			url = "/" + url
		}
		r, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://localhost"+url, nil)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrDispatchFailed, url, err)
		}
		r.Header.Set("Accept", "application/json")

		rec := &recorder{header: make(http.Header), status: http.StatusOK}
		h.ServeHTTP(rec, r)
		if rec.status >= http.StatusBadRequest {
			return fmt.Errorf("%w: %s: status %d: %s", ErrDispatchFailed, url, rec.status, bytes.TrimSpace(rec.body.Bytes()))
		}
		return nil
	}
}

type recorder struct {
	header http.Header
	body   bytes.Buffer
	status int
	wrote  bool
}

func (r *recorder) Header() http.Header { return r.header }

func (r *recorder) Write(p []byte) (int, error) {
	r.wrote = true
	return r.body.Write(p)
}

func (r *recorder) WriteHeader(code int) {
	if !r.wrote {
		r.status = code
		r.wrote = true
	}
}
