package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer turns markdown templates with YAML frontmatter into HTML.
// Parsed templates and layouts are cached; it is safe for concurrent use.
type Renderer struct {
	fs        fs.FS
	md        goldmark.Markdown
	templates map[string]*parsedTemplate
	layouts   map[string]*template.Template
	layoutDir string
	mu        sync.RWMutex
}

type parsedTemplate struct {
	metadata map[string]any
	body     *texttemplate.Template
}

// RenderResult is the rendered email content.
type RenderResult struct {
	Metadata map[string]any
	HTML     string
	Text     string // the executed markdown, used as the plain text part
}

// NewRenderer reads templates from fsys and layouts from fsys/layoutDir.
func NewRenderer(fsys fs.FS, layoutDir string) *Renderer {
	if layoutDir == "" {
		layoutDir = "layouts"
	}
	return &Renderer{
		fs:        fsys,
		md:        goldmark.New(goldmark.WithExtensions(extension.GFM)),
		templates: make(map[string]*parsedTemplate),
		layouts:   make(map[string]*template.Template),
		layoutDir: layoutDir,
	}
}

// Render executes name with data, converts it to HTML and wraps it in
// layout. The layout receives .Content and .Metadata. An empty layout
// returns the converted markdown as is.
func (r *Renderer) Render(layout, name string, data any) (*RenderResult, error) {
	tpl, err := r.template(name)
	if err != nil {
		return nil, err
	}

	var markdown bytes.Buffer
	if err := tpl.body.Execute(&markdown, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	var content bytes.Buffer
	if err := r.md.Convert(markdown.Bytes(), &content); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	result := &RenderResult{Metadata: tpl.metadata, HTML: content.String(), Text: markdown.String()}
	if layout == "" {
		return result, nil
	}

	lt, err := r.layout(layout)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	err = lt.Execute(&out, map[string]any{
		"Content":  template.HTML(content.String()),
		"Metadata": tpl.metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, layout, err)
	}
	result.HTML = out.String()
	return result, nil
}

func (r *Renderer) template(name string) (*parsedTemplate, error) {
	r.mu.RLock()
	tpl, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	content, err := fs.ReadFile(r.fs, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	parsed, err := ParseTemplate(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	body, err := texttemplate.New(name).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
	}

	tpl = &parsedTemplate{metadata: parsed.Metadata, body: body}
	r.mu.Lock()
	r.templates[name] = tpl
	r.mu.Unlock()
	return tpl, nil
}

func (r *Renderer) layout(name string) (*template.Template, error) {
	r.mu.RLock()
	lt, ok := r.layouts[name]
	r.mu.RUnlock()
	if ok {
		return lt, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrLayoutNotFound, name)
	}
	lt, err = template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: layout %s: %v", ErrRenderFailed, name, err)
	}

	r.mu.Lock()
	r.layouts[name] = lt
	r.mu.Unlock()
	return lt, nil
}
