package helpers_test

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mvc/pkg/helpers"
)

func TestHTML(t *testing.T) {
	t.Parallel()

	h := helpers.NewHTML("/static/")

	tests := []struct {
		name string
		got  template.HTML
		want template.HTML
	}{
		{"relative css", h.CSS("app.css"), `<link rel="stylesheet" href="/static/app.css">`},
		{"absolute css", h.CSS("/x.css"), `<link rel="stylesheet" href="/x.css">`},
		{"remote script", h.Script("https://cdn.example.com/a.js"), `<script src="https://cdn.example.com/a.js"></script>`},
		{"link escapes", h.Link("<b>", "/a?x=1&y=2"), `<a href="/a?x=1&amp;y=2">&lt;b&gt;</a>`},
		{"sanitize", h.Sanitize(`<em>ok</em><script>x()</script>`), `<em>ok</em>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.got)
		})
	}

	assert.Equal(t, "a &amp; b", h.Escape("a & b"))
}

func TestHTML_Markdown(t *testing.T) {
	t.Parallel()

	h := helpers.NewHTML("")
	out, err := h.Markdown("# Title\n\nSome **bold** text.\n\n<script>alert(1)</script>")
	require.NoError(t, err)
	assert.Contains(t, string(out), "<strong>bold</strong>")
	assert.NotContains(t, string(out), "<script>")
	assert.NotContains(t, string(out), "alert")
}
