package pongoview_test

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc/internal"
	"github.com/dmitrymomot/mvc/pkg/pongoview"
)

var views = fstest.MapFS{
	"posts/index.html":     {Data: []byte(`{% for p in posts %}<li>{{ p }}</li>{% endfor %}{{ element("footer")|safe }}`)},
	"posts/escape.html":    {Data: []byte(`{{ title }}|{{ shout("hi") }}`)},
	"elements/footer.html": {Data: []byte(`<footer>{{ site }}</footer>`)},
	"layouts/default.html": {Data: []byte(`<title>{{ page_title }}</title>{{ content|safe }}`)},
	"broken/template.html": {Data: []byte(`{% if %}`)},
}

func render(t *testing.T, e internal.Engine, name string, vars map[string]any, content string) (string, error) {
	t.Helper()

	v := internal.NewVars()
	for k, val := range vars {
		v.Set(k, val)
	}
	req := internal.NewRequest(httptest.NewRequest("GET", "/posts", nil), internal.DefaultHome)
	view := internal.NewView(e, nil, name, v, req)
	view.Data().Content = content
	view.Data().Helpers["shout"] = strings.ToUpper

	var buf bytes.Buffer
	err := view.Render(&buf)
	return buf.String(), err
}

func TestEngine_Render(t *testing.T) {
	t.Parallel()

	e := pongoview.New(views, pongoview.WithGlobals(map[string]any{"site": "blog"}))

	out, err := render(t, e, "posts/index", map[string]any{"posts": []string{"a", "b"}}, "")
	require.NoError(t, err)
	require.Equal(t, "<li>a</li><li>b</li><footer>blog</footer>", out)

	out, err = render(t, e, "posts/escape", map[string]any{"title": "<b>"}, "")
	require.NoError(t, err)
	require.Equal(t, "&lt;b&gt;|HI", out)

	out, err = render(t, e, "layouts/default", map[string]any{"page_title": "Home"}, "<p>body</p>")
	require.NoError(t, err)
	require.Equal(t, "<title>Home</title><p>body</p>", out)
}

func TestEngine_Errors(t *testing.T) {
	t.Parallel()

	e := pongoview.New(views, pongoview.WithDebug(true))

	_, err := render(t, e, "posts/missing", nil, "")
	require.ErrorIs(t, err, internal.ErrViewNotFound)
	httpErr := internal.AsHTTPError(err)
	require.NotNil(t, httpErr)
	require.Equal(t, "View not found: posts/missing", httpErr.Message)

	_, err = render(t, e, "broken/template", nil, "")
	require.Error(t, err)
	require.NotErrorIs(t, err, internal.ErrViewNotFound)
}
