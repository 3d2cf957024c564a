package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	safePolicy   *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br", "hr",
			"h1", "h2", "h3", "h4",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
			"table", "thead", "tbody", "tr", "th", "td",
		)
		safePolicy.AllowAttrs("href", "title").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)
	})
}

// StripHTML removes every tag and returns the text content.
// Entities produced by the policy are left escaped.
func StripHTML(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}

// StripTags removes every tag except the allowed elements, which keep no
// attributes.
func StripTags(s string, allowed ...string) string {
	if len(allowed) == 0 {
		return StripHTML(s)
	}
	p := bluemonday.NewPolicy()
	p.AllowElements(allowed...)
	return p.Sanitize(s)
}

// SanitizeHTML keeps basic formatting (paragraphs, emphasis, lists, code,
// tables, links) and drops everything else, including scripts, event
// handlers and javascript: URLs.
func SanitizeHTML(s string) string {
	initPolicies()
	return safePolicy.Sanitize(s)
}
