// Package internal provides the core types and implementation of the mvc framework.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/mvc" instead, which re-exports the public API.
//
// # Core Types
//
//   - App: owns the Registry, the view Engine and the chi router; dispatches requests
//   - Request: controller, action and positional params parsed from the URL path
//   - Controller: embeddable base holding view variables, layout and loaded models
//   - Handler: implemented by every controller (Base + Actions)
//   - View / ViewData: a template name plus a snapshot of the controller's variables
//   - Response: the fully buffered result of one dispatch
//   - HTTPError: the single error kind surfaced to clients
//
// # Dispatch
//
// Every request goes through five phases:
//
//  1. Resolve: the first path segment selects a controller factory.
//  2. Prepare: the controller receives the request and loads its Uses and Components.
//  3. Hook: BeforeFilter runs when the controller implements it.
//  4. Invoke: the second segment selects the action; the rest become params.
//  5. Render: unless AutoRender is off, the action's view is rendered as
//     JSON, CSV/XLS/XLSX or HTML and wrapped in "layouts/<Layout>".
//
// Any error or panic discards the buffered output and produces
//
//	{"success":false,"error":"<message>"}
//
// with the error's status code, or 500. In testing mode the status is always 200.
//
// # Controllers
//
//	type Posts struct {
//	    internal.Controller
//	}
//
//	func (p *Posts) Actions() internal.Actions {
//	    return internal.Actions{"index": p.Index}
//	}
//
//	func (p *Posts) Index(params ...string) error {
//	    posts, err := internal.Model[*PostModel](&p.Controller, "post")
//	    if err != nil {
//	        return err
//	    }
//	    p.Set("posts", posts.Latest(p.Context()))
//	    return nil
//	}
//
// See the mvc package documentation for the public API and usage examples.
package internal
