package pongoview

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/dmitrymomot/mvc/internal"
)

// Engine renders pongo2 templates from a file system.
// View "posts/index" is read from "posts/index.html".
type Engine struct {
	fsys  fs.FS
	set   *pongo2.TemplateSet
	ext   string
	debug bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithExtension sets the template file extension. Default: ".html".
func WithExtension(ext string) Option {
	return func(e *Engine) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		e.ext = ext
	}
}

// WithDebug disables the template cache so edits show up without a restart.
func WithDebug(on bool) Option {
	return func(e *Engine) { e.debug = on }
}

// WithGlobals adds values visible to every template.
func WithGlobals(globals map[string]any) Option {
	return func(e *Engine) {
		e.set.Globals.Update(pongo2.Context(globals))
	}
}

// New creates an engine reading templates from fsys.
func New(fsys fs.FS, opts ...Option) *Engine {
	e := &Engine{
		fsys: fsys,
		set:  pongo2.NewSet("mvc", pongo2.NewFSLoader(fsys)),
		ext:  ".html",
	}
	e.set.Globals = make(pongo2.Context)
	for _, opt := range opts {
		opt(e)
	}
	e.set.Debug = e.debug
	return e
}

// Render implements internal.Engine.
//
// The template context holds the view variables, every loaded helper under
// its name, "request", "content" for layouts and an "element" function.
// Output of content and element is trusted HTML; use the safe filter:
//
//	{{ content|safe }}
//	{{ element("footer")|safe }}
func (e *Engine) Render(w io.Writer, name string, data *internal.ViewData) error {
	path := name + e.ext
	if _, err := fs.Stat(e.fsys, path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", internal.ErrViewNotFound, name)
		}
		return fmt.Errorf("pongoview: stat %q: %w", path, err)
	}

	var (
		tpl *pongo2.Template
		err error
	)
	if e.debug {
		tpl, err = e.set.FromFile(path)
	} else {
		tpl, err = e.set.FromCache(path)
	}
	if err != nil {
		return fmt.Errorf("pongoview: load %q: %w", path, err)
	}

	if err := tpl.ExecuteWriter(templateContext(data), w); err != nil {
		return fmt.Errorf("pongoview: execute %q: %w", path, err)
	}
	return nil
}

func templateContext(data *internal.ViewData) pongo2.Context {
	ctx := make(pongo2.Context, len(data.Vars)+len(data.Helpers)+4)
	for k, v := range data.Vars {
		ctx[k] = v
	}
	for k, v := range data.Helpers {
		ctx[k] = v
	}
	ctx["request"] = data.Request
	ctx["content"] = data.Content
	ctx["element"] = func(name string) (string, error) {
		return data.Element(name)
	}
	return ctx
}
