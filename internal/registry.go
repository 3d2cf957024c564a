package internal

import (
	"strings"
	"sync"
)

// Action is a controller action. Params are the URL segments after the action name.
type Action func(params ...string) error

// Actions maps action names to their implementations.
type Actions map[string]Action

// Handler is implemented by every controller.
// Base is promoted from an embedded Controller.
//
// Example:
//
//	type Posts struct {
//	    mvc.Controller
//	}
//
//	func (p *Posts) Actions() mvc.Actions {
//	    return mvc.Actions{"index": p.Index, "view": p.View}
//	}
type Handler interface {
	Base() *Controller
	Actions() Actions
}

// BeforeFilter is an optional hook run before every action.
type BeforeFilter interface {
	BeforeFilter() error
}

// ControllerFactory creates a fresh controller for one dispatch.
type ControllerFactory func() Handler

// LoaderFunc creates a model or component for a controller.
type LoaderFunc func(c *Controller) (any, error)

// HelperFunc creates a view helper.
type HelperFunc func(v *ViewData) any

// Registry maps lowercased names to controller, model, component and helper factories.
type Registry struct {
	controllers map[string]ControllerFactory
	models      map[string]LoaderFunc
	components  map[string]LoaderFunc
	helpers     map[string]HelperFunc
	mu          sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		controllers: make(map[string]ControllerFactory),
		models:      make(map[string]LoaderFunc),
		components:  make(map[string]LoaderFunc),
		helpers:     make(map[string]HelperFunc),
	}
}

// AddController registers a controller factory under name.
func (r *Registry) AddController(name string, f ControllerFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.controllers[normalizeName(name)] = f
}

// AddModel registers a model loader under name.
func (r *Registry) AddModel(name string, f LoaderFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[normalizeName(name)] = f
}

// AddComponent registers a component loader under name.
func (r *Registry) AddComponent(name string, f LoaderFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.components[normalizeName(name)] = f
}

// AddHelper registers a view helper under name.
func (r *Registry) AddHelper(name string, f HelperFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.helpers[normalizeName(name)] = f
}

// Controller returns the factory registered under name.
func (r *Registry) Controller(name string) (ControllerFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.controllers[normalizeName(name)]
	return f, ok
}

// Model returns the loader registered under name.
func (r *Registry) Model(name string) (LoaderFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.models[normalizeName(name)]
	return f, ok
}

// Component returns the loader registered under name.
func (r *Registry) Component(name string) (LoaderFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.components[normalizeName(name)]
	return f, ok
}

// Helper returns the helper factory registered under name.
func (r *Registry) Helper(name string) (HelperFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.helpers[normalizeName(name)]
	return f, ok
}

// lookupAction finds an action by case-insensitive name.
func lookupAction(actions Actions, name string) (Action, bool) {
	if a, ok := actions[name]; ok && a != nil {
		return a, true
	}
	want := normalizeName(name)
	for k, a := range actions {
		if normalizeName(k) == want && a != nil {
			return a, true
		}
	}
	return nil, false
}

// normalizeName lowercases name and drops underscores, so "blog_posts",
// "BlogPosts" and "blogposts" resolve to the same entry.
func normalizeName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", ""))
}
