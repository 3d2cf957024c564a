package internal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// RunCLI dispatches a single URL given on the command line and writes the
// response body to stdout. Exactly one argument is accepted; anything else
// writes the error envelope and returns ErrURLMissing.
// A failed dispatch returns an error wrapping the response status.
//
// Example:
//
//	if err := mvc.RunCLI(ctx, app, flag.Args(), os.Stdout); err != nil {
//	    os.Exit(1)
//	}
func RunCLI(ctx context.Context, app *App, args []string, stdout io.Writer) error {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		resp := ErrorResponse(ErrURLMissing, app.testing)
		if _, err := stdout.Write(resp.Body.Bytes()); err != nil {
			return err
		}
		return ErrURLMissing
	}

	target := args[0]
	if !strings.HasPrefix(target, "/") {
		target = "/" + target
	}
	r, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://localhost"+target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp := app.Dispatch(r)
	if _, err := stdout.Write(resp.Body.Bytes()); err != nil {
		return err
	}
	if resp.Status >= http.StatusBadRequest {
		return fmt.Errorf("dispatch %s: status %d", args[0], resp.Status)
	}
	return nil
}
