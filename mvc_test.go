package mvc_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc"
)

type greeter struct{ greeting string }

type pages struct {
	mvc.Controller
}

func (p *pages) Actions() mvc.Actions {
	return mvc.Actions{
		"index": func(...string) error {
			g, err := mvc.Model[*greeter](&p.Controller, "greeter")
			if err != nil {
				return err
			}
			p.Set("greeting", g.greeting)
			return nil
		},
		"hello": func(...string) error {
			p.AutoRender = false
			_, err := fmt.Fprintf(p, "hello %s x%d", mvc.Param[string](p.Request, 0), mvc.VarDefault(p.Request, "n", 1))
			return err
		},
		"secret": func(...string) error {
			return mvc.ErrForbidden("Forbidden")
		},
	}
}

func newApp(opts ...mvc.Option) *mvc.App {
	engine := mvc.EngineFunc(func(w io.Writer, name string, data *mvc.ViewData) error {
		switch name {
		case "pages/index":
			_, err := fmt.Fprintf(w, "<p>%v</p>", data.Get("greeting"))
			return err
		case "layouts/default":
			_, err := fmt.Fprintf(w, "<body>%s</body>", data.Content)
			return err
		}
		return fmt.Errorf("%w: %s", mvc.ErrViewNotFound, name)
	})

	base := []mvc.Option{
		mvc.WithEngine(engine),
		mvc.WithController("pages", func() mvc.Handler {
			p := &pages{}
			p.Uses = []string{"greeter"}
			return p
		}),
		mvc.WithModel("greeter", func(*mvc.Controller) (any, error) {
			return &greeter{greeting: "hi"}, nil
		}),
	}
	return mvc.New(append(base, opts...)...)
}

func TestApp(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(newApp())
	t.Cleanup(srv.Close)

	tests := []struct {
		name   string
		path   string
		status int
		body   string
	}{
		{"home", "/", http.StatusOK, "<body><p>hi</p></body>"},
		{"params", "/pages/hello/bob?n=3", http.StatusOK, "hello bob x3"},
		{"http error", "/pages/secret", http.StatusForbidden, `{"success":false,"error":"Forbidden"}`},
		{"unknown controller", "/nope", http.StatusNotFound, `{"success":false,"error":"Controller not found: nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			require.Equal(t, tt.status, resp.StatusCode)
			require.Equal(t, tt.body, string(body))
		})
	}
}

func TestRunCLI(t *testing.T) {
	t.Parallel()

	app := newApp(mvc.WithTesting(true))

	var out bytes.Buffer
	require.NoError(t, mvc.RunCLI(context.Background(), app, []string{"pages/hello/cli"}, &out))
	require.Equal(t, "hello cli x1", out.String())

	out.Reset()
	require.ErrorIs(t, mvc.RunCLI(context.Background(), app, nil, &out), mvc.ErrURLMissing)
	require.Equal(t, `{"success":false,"error":"URL is missing"}`, out.String())
}

func TestParseURL(t *testing.T) {
	t.Parallel()

	c, a, p := mvc.ParseURL("/", mvc.DefaultHome)
	require.Equal(t, "pages", c)
	require.Equal(t, mvc.DefaultAction, a)
	require.Empty(t, p)

	require.Equal(t, http.StatusNotFound, mvc.AsHTTPError(fmt.Errorf("x: %w", mvc.ErrNotFound("gone"))).Code)
}
