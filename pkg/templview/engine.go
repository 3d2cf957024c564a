package templview

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/mvc/internal"
)

// ViewFunc builds the component for one view from its data.
type ViewFunc func(data *internal.ViewData) templ.Component

// Engine renders registered templ components by view name.
// It is safe for concurrent use.
type Engine struct {
	mu    sync.RWMutex
	views map[string]ViewFunc
}

// New creates an empty engine.
func New() *Engine {
	return &Engine{views: make(map[string]ViewFunc)}
}

// Register binds name (e.g. "posts/index" or "layouts/default") to fn.
func (e *Engine) Register(name string, fn ViewFunc) *Engine {
	e.mu.Lock()
	e.views[name] = fn
	e.mu.Unlock()
	return e
}

// Render implements internal.Engine.
func (e *Engine) Render(w io.Writer, name string, data *internal.ViewData) error {
	e.mu.RLock()
	fn, ok := e.views[name]
	e.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", internal.ErrViewNotFound, name)
	}

	ctx := context.Background()
	if data.Request != nil && data.Request.HTTPRequest() != nil {
		ctx = data.Request.HTTPRequest().Context()
	}
	if err := fn(data).Render(ctx, w); err != nil {
		return fmt.Errorf("templview: render %q: %w", name, err)
	}
	return nil
}

// Content returns the wrapped action output for use inside layouts.
func Content(data *internal.ViewData) templ.Component {
	return templ.Raw(data.Content)
}

// Element renders "elements/<name>" as a component.
func Element(data *internal.ViewData, name string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out, err := data.Element(name)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	})
}
