package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc/internal"
)

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("direct HTTPError", func(t *testing.T) {
		t.Parallel()
		got := internal.AsHTTPError(internal.ErrNotFound("not found"))
		require.NotNil(t, got)
		require.Equal(t, http.StatusNotFound, got.StatusCode())
		require.Equal(t, "not found", got.Message)
	})

	t.Run("wrapped HTTPError", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", internal.ErrForbidden("no")))
		got := internal.AsHTTPError(err)
		require.NotNil(t, got)
		require.Equal(t, http.StatusForbidden, got.Code)
	})

	t.Run("unrelated error returns nil", func(t *testing.T) {
		t.Parallel()
		require.Nil(t, internal.AsHTTPError(errors.New("plain error")))
		require.Nil(t, internal.AsHTTPError(nil))
	})

	t.Run("wrap keeps the cause", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("disk full")
		err := internal.Wrap(http.StatusServiceUnavailable, cause)
		require.ErrorIs(t, err, cause)
		require.Equal(t, "disk full", err.Error())
	})
}

func TestErrorResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		body    string
		status  int
		testing bool
	}{
		{
			name:   "plain error is 500",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			body:   `{"success":false,"error":"boom"}`,
		},
		{
			name:   "status from HTTPError",
			err:    internal.Errorf(http.StatusNotFound, "Controller not found: %s", "nope"),
			status: http.StatusNotFound,
			body:   `{"success":false,"error":"Controller not found: nope"}`,
		},
		{
			name:    "testing mode answers 200",
			err:     internal.ErrNotFound("gone"),
			testing: true,
			status:  http.StatusOK,
			body:    `{"success":false,"error":"gone"}`,
		},
		{
			name:   "zero code falls back to 500",
			err:    &internal.HTTPError{Message: "no code"},
			status: http.StatusInternalServerError,
			body:   `{"success":false,"error":"no code"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resp := internal.ErrorResponse(tt.err, tt.testing)
			require.Equal(t, tt.status, resp.Status)
			require.Equal(t, tt.body, resp.Body.String())
			require.Equal(t, "application/json; charset=utf-8", resp.Header().Get("Content-Type"))
		})
	}
}
