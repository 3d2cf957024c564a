package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Template is a parsed markdown template.
type Template struct {
	Metadata map[string]any
	Body     string
}

var delimiter = []byte("---")

// ParseTemplate splits optional YAML frontmatter, fenced by "---" lines,
// from the markdown body.
func ParseTemplate(content []byte) (*Template, error) {
	rest, ok := bytes.CutPrefix(content, delimiter)
	if !ok {
		return &Template{Metadata: map[string]any{}, Body: string(content)}, nil
	}
	rest = bytes.TrimLeft(rest, "\r\n")

	front, body, ok := bytes.Cut(rest, delimiter)
	if !ok {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}
	body, ok = bytes.CutPrefix(body, []byte("\r\n"))
	if !ok {
		body, _ = bytes.CutPrefix(body, []byte("\n"))
	}

	meta := map[string]any{}
	if len(bytes.TrimSpace(front)) > 0 {
		if err := yaml.Unmarshal(front, &meta); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	return &Template{Metadata: meta, Body: string(body)}, nil
}
