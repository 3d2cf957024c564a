package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mvc/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"script removed", `<p>Hello</p><script>alert('xss')</script>`, "Hello"},
		{"nested tags", `<div><p>nested <span>content</span></p></div>`, "nested content"},
		{"javascript link", `<a href="javascript:alert(1)">click</a>`, "click"},
		{"event handler", `<img src="x" onerror="alert(1)">`, ""},
		{"plain text", "normal text", "normal text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.StripHTML(tt.input))
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<p>Hi <strong>there</strong></p>", sanitizer.SanitizeHTML(`<p onclick="x()">Hi <strong>there</strong></p><script>bad()</script>`))
	assert.Equal(t, `<a href="https://example.com" rel="nofollow">x</a>`, sanitizer.SanitizeHTML(`<a href="https://example.com">x</a>`))
	assert.Equal(t, "x", sanitizer.SanitizeHTML(`<a href="javascript:alert(1)">x</a>`))
}

func TestText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ab\ncd", sanitizer.StripUnprintable("a\x00b\ncd\x07"))
	assert.Equal(t, "a b\nc", sanitizer.NormalizeWhitespace("  a   b\r\n\nc  ", false))
	assert.Equal(t, "a b c", sanitizer.NormalizeWhitespace("a\nb\u2028 c", true))
	assert.Equal(t, "\t", sanitizer.NormalizeWhitespace(" \t ", false))
}

func TestStripTags(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<b>bold</b> plain", sanitizer.StripTags(`<b class="x">bold</b> <i>plain</i>`, "b"))
	assert.Equal(t, "text", sanitizer.StripTags(`<p>text</p>`))
}
