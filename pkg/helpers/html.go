package helpers

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/dmitrymomot/mvc/pkg/sanitizer"
)

// HTML renders small markup snippets for views. Relative asset paths are
// prefixed with Base.
type HTML struct {
	Base string
	md   goldmark.Markdown
}

// NewHTML creates an HTML helper serving assets below base (e.g. "/static").
func NewHTML(base string) *HTML {
	return &HTML{
		Base: strings.TrimSuffix(base, "/"),
		md:   goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// CSS returns a stylesheet link tag.
func (h *HTML) CSS(href string) template.HTML {
	return template.HTML(fmt.Sprintf(`<link rel="stylesheet" href="%s">`, html.EscapeString(h.asset(href))))
}

// Script returns a script tag.
func (h *HTML) Script(src string) template.HTML {
	return template.HTML(fmt.Sprintf(`<script src="%s"></script>`, html.EscapeString(h.asset(src))))
}

// Link returns an anchor with escaped text.
func (h *HTML) Link(text, href string) template.HTML {
	return template.HTML(fmt.Sprintf(`<a href="%s">%s</a>`, html.EscapeString(href), html.EscapeString(text)))
}

// Escape escapes s for use in HTML text and attribute values.
func (h *HTML) Escape(s string) string {
	return html.EscapeString(s)
}

// Markdown converts markdown to HTML and sanitizes the result.
func (h *HTML) Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("helpers: render markdown: %w", err)
	}
	return template.HTML(sanitizer.SanitizeHTML(buf.String())), nil
}

// Sanitize keeps basic formatting tags of untrusted HTML.
func (h *HTML) Sanitize(s string) template.HTML {
	return template.HTML(sanitizer.SanitizeHTML(s))
}

func (h *HTML) asset(p string) string {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "://") || h.Base == "" {
		return p
	}
	return h.Base + "/" + p
}
