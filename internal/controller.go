package internal

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/mvc/pkg/session"
)

// DefaultLayout is the layout used when a controller does not choose one.
const DefaultLayout = "default"

// Controller is the embeddable base of every controller.
//
// The dispatcher resets AutoRender to true and fills an empty Layout with
// "default" before BeforeFilter runs, so change them in BeforeFilter or in
// an action. Uses, Components and Helpers may be set by the factory.
type Controller struct {
	ctx         context.Context
	app         *App
	resp        *Response
	session     *session.Session
	redirect    *redirect
	models      map[string]any
	components  map[string]any
	Request     *Request
	Vars        *Vars
	out         bytes.Buffer
	Layout      string
	Uses        []string
	Components  []string
	Helpers     []string
	AutoRender  bool
	hasRendered bool
}

// redirect is a pending redirect issued by an action.
type redirect struct {
	url      string
	status   int
	internal bool
}

// Base returns c. It satisfies Handler for any struct embedding Controller.
func (c *Controller) Base() *Controller {
	return c
}

// prepare binds the controller to one dispatch.
func (c *Controller) prepare(ctx context.Context, app *App, req *Request, resp *Response) {
	c.ctx = ctx
	c.app = app
	c.resp = resp
	c.Request = req
	c.Vars = NewVars()
	c.AutoRender = true
	c.hasRendered = false
	c.redirect = nil
	c.out.Reset()
	if c.Layout == "" {
		c.Layout = DefaultLayout
	}
	c.models = make(map[string]any)
	c.components = make(map[string]any)
	c.Set("request", req)
}

// Context returns the dispatch context.
func (c *Controller) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

// Logger returns the application logger.
func (c *Controller) Logger() *slog.Logger {
	return c.app.logger
}

// Set assigns a view variable.
func (c *Controller) Set(key string, value any) {
	if c.Vars == nil {
		c.Vars = NewVars()
	}
	c.Vars.Set(key, value)
}

// SetMany assigns several view variables in sorted key order.
func (c *Controller) SetMany(vars map[string]any) {
	for _, k := range sortedKeys(vars) {
		c.Set(k, vars[k])
	}
}

// HasRendered reports whether a view has been rendered.
func (c *Controller) HasRendered() bool {
	return c.hasRendered
}

// Render renders a view into the controller's buffer.
// An empty name renders "<controller>/<action>"; a name without a slash is
// resolved inside the controller's view directory.
func (c *Controller) Render(name string) error {
	if name == "" {
		name = c.Request.Action
	}
	if !strings.Contains(name, "/") {
		name = c.Request.Controller + "/" + name
	}

	v := NewView(c.app.engine, c.app.registry, name, c.Vars, c.Request)
	if err := v.LoadHelpers(c.Helpers); err != nil {
		return err
	}
	if err := v.Render(&c.out); err != nil {
		return err
	}
	c.hasRendered = true
	return nil
}

// Write appends raw output to the controller's buffer.
// Use it together with AutoRender = false.
func (c *Controller) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

// Header returns the response header, for actions that set their own headers.
func (c *Controller) Header() http.Header {
	return c.resp.Header()
}

// Status sets the response status code.
func (c *Controller) Status(code int) {
	c.resp.WriteHeader(code)
}

// Response returns the response being built; it doubles as an http.ResponseWriter
// for cookie helpers.
func (c *Controller) Response() http.ResponseWriter {
	return c.resp
}

// Redirect answers with a 302 to url. Nothing is rendered.
func (c *Controller) Redirect(url string) {
	c.RedirectWithStatus(url, http.StatusFound)
}

// RedirectWithStatus answers with the given 3xx status.
func (c *Controller) RedirectWithStatus(url string, status int) {
	c.redirect = &redirect{url: url, status: status}
}

// RedirectInternal re-dispatches url in-process and returns its response.
func (c *Controller) RedirectInternal(url string) {
	c.redirect = &redirect{url: url, internal: true}
}

// Redirected reports whether a redirect is pending.
func (c *Controller) Redirected() bool {
	return c.redirect != nil
}

// LoadModel loads a model once and caches it under name.
func (c *Controller) LoadModel(name string) (any, error) {
	key := normalizeName(name)
	if m, ok := c.models[key]; ok {
		return m, nil
	}
	f, ok := c.app.registry.Model(name)
	if !ok {
		return nil, &HTTPError{
			Code:    http.StatusInternalServerError,
			Message: "Model not found: " + name,
			Err:     ErrModelNotFound,
		}
	}
	m, err := f(c)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", name, err)
	}
	c.models[key] = m
	return m, nil
}

// LoadComponent loads a component once and caches it under name.
func (c *Controller) LoadComponent(name string) (any, error) {
	key := normalizeName(name)
	if m, ok := c.components[key]; ok {
		return m, nil
	}
	f, ok := c.app.registry.Component(name)
	if !ok {
		return nil, &HTTPError{
			Code:    http.StatusInternalServerError,
			Message: "Component not found: " + name,
			Err:     ErrComponentNotFound,
		}
	}
	comp, err := f(c)
	if err != nil {
		return nil, fmt.Errorf("load component %s: %w", name, err)
	}
	c.components[key] = comp
	return comp, nil
}

// LoadedModels returns the normalized names of loaded models.
func (c *Controller) LoadedModels() []string {
	return sortedKeys(c.models)
}

// LoadedComponents returns the normalized names of loaded components.
func (c *Controller) LoadedComponents() []string {
	return sortedKeys(c.components)
}

// Session returns the visitor session, loading it on first use.
// It is saved automatically after the action.
func (c *Controller) Session() (*session.Session, error) {
	if c.session != nil {
		return c.session, nil
	}
	if c.app.sessions == nil {
		return nil, session.ErrNotConfigured
	}
	s, err := c.app.sessions.Load(c.Request.HTTPRequest())
	if err != nil {
		return nil, err
	}
	c.session = s
	return s, nil
}

// SetFlash stores a one-time message in the session.
func (c *Controller) SetFlash(message, typ, key string) error {
	s, err := c.Session()
	if err != nil {
		return err
	}
	s.SetFlash(message, typ, key)
	return nil
}

// Model returns the model registered under name as T, loading it on first use.
func Model[T any](c *Controller, name string) (T, error) {
	var zero T
	m, err := c.LoadModel(name)
	if err != nil {
		return zero, err
	}
	typed, ok := m.(T)
	if !ok {
		return zero, fmt.Errorf("model %s has type %T", name, m)
	}
	return typed, nil
}

// Component returns the component registered under name as T, loading it on first use.
func Component[T any](c *Controller, name string) (T, error) {
	var zero T
	comp, err := c.LoadComponent(name)
	if err != nil {
		return zero, err
	}
	typed, ok := comp.(T)
	if !ok {
		return zero, fmt.Errorf("component %s has type %T", name, comp)
	}
	return typed, nil
}
