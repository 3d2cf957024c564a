package internal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
)

// LayoutVars are variables that belong to the layout. They are forwarded
// to the layout template and excluded from JSON responses.
var LayoutVars = []string{
	"page_title",
	"meta_title",
	"meta_description",
	"meta_keywords",
	"meta_robots",
	"authuser",
	"request",
	"theme",
	"body_classes",
}

// Engine renders named templates.
// Implementations must return an error wrapping ErrViewNotFound for unknown names.
type Engine interface {
	Render(w io.Writer, name string, data *ViewData) error
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(w io.Writer, name string, data *ViewData) error

// Render calls f(w, name, data).
func (f EngineFunc) Render(w io.Writer, name string, data *ViewData) error {
	return f(w, name, data)
}

// ViewData is the view model passed to an Engine.
type ViewData struct {
	Vars    map[string]any
	Helpers map[string]any
	Request *Request
	view    *View
	Name    string
	Content string
}

// Element renders "elements/<name>" with the same data and returns the output.
func (d *ViewData) Element(name string) (string, error) {
	if d.view == nil {
		return "", fmt.Errorf("%w: elements/%s", ErrViewNotFound, name)
	}
	return d.view.renderString("elements/" + name)
}

// Get returns a view variable.
func (d *ViewData) Get(key string) any {
	return d.Vars[key]
}

// Helper returns a loaded helper.
func (d *ViewData) Helper(name string) any {
	return d.Helpers[name]
}

// View renders one template with a snapshot of the controller's variables.
type View struct {
	engine   Engine
	registry *Registry
	data     *ViewData
	loaded   []string
}

// NewView creates a view named name. vars is copied; later changes on
// either side are not shared.
func NewView(engine Engine, registry *Registry, name string, vars *Vars, req *Request) *View {
	v := &View{engine: engine, registry: registry}
	v.data = &ViewData{
		Name:    name,
		Vars:    vars.Map(),
		Helpers: make(map[string]any),
		Request: req,
		view:    v,
	}
	return v
}

// Data returns the view model.
func (v *View) Data() *ViewData {
	return v.data
}

// LoadHelper loads a helper once.
func (v *View) LoadHelper(name string) error {
	for _, h := range v.loaded {
		if h == name {
			return nil
		}
	}
	var (
		f  HelperFunc
		ok bool
	)
	if v.registry != nil {
		f, ok = v.registry.Helper(name)
	}
	if !ok {
		return &HTTPError{
			Code:    http.StatusInternalServerError,
			Message: "Helper not found: " + name,
			Err:     ErrHelperNotFound,
		}
	}
	v.loaded = append(v.loaded, name)
	v.data.Helpers[name] = f(v.data)
	return nil
}

// LoadHelpers loads each named helper.
func (v *View) LoadHelpers(names []string) error {
	for _, name := range names {
		if err := v.LoadHelper(name); err != nil {
			return err
		}
	}
	return nil
}

// Render writes the view to w.
func (v *View) Render(w io.Writer) error {
	return v.renderTo(w, v.data.Name)
}

func (v *View) renderTo(w io.Writer, name string) error {
	if v.engine == nil {
		return ErrNoEngine
	}
	data := v.data
	if name != data.Name {
		data = &ViewData{
			Name:    name,
			Vars:    maps.Clone(v.data.Vars),
			Helpers: v.data.Helpers,
			Request: v.data.Request,
			Content: v.data.Content,
			view:    v,
		}
	}
	if err := v.engine.Render(w, name, data); err != nil {
		if errors.Is(err, ErrViewNotFound) && AsHTTPError(err) == nil {
			return &HTTPError{Code: http.StatusInternalServerError, Message: "View not found: " + name, Err: err}
		}
		return err
	}
	return nil
}

func (v *View) renderString(name string) (string, error) {
	var buf bytes.Buffer
	if err := v.renderTo(&buf, name); err != nil {
		return "", err
	}
	return buf.String(), nil
}
