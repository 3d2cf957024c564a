// Package mvc is a minimal model-view-controller framework.
//
// Every URL has the shape /controller/action/param1/param2/... and is
// dispatched to a method of a registered controller. There are no route
// tables: registering a controller under a name makes all of its actions
// reachable.
//
// # Quick Start
//
//	type Posts struct {
//	    mvc.Controller
//	}
//
//	func (p *Posts) Actions() mvc.Actions {
//	    return mvc.Actions{"index": p.Index, "view": p.View}
//	}
//
//	func (p *Posts) Index(params ...string) error {
//	    posts, err := mvc.Model[*PostModel](&p.Controller, "post")
//	    if err != nil {
//	        return err
//	    }
//	    p.Set("posts", posts.Latest(p.Context()))
//	    return nil
//	}
//
//	app := mvc.New(
//	    mvc.WithEngine(pongoview.New(views)),
//	    mvc.WithController("posts", func() mvc.Handler {
//	        return &Posts{Controller: mvc.Controller{Uses: []string{"post"}}}
//	    }),
//	    mvc.WithModel("post", func(*mvc.Controller) (any, error) { return posts, nil }),
//	)
//
//	if err := app.Run(":8080"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Rendering
//
// After the action returns, its view "<controller>/<action>" is rendered
// with the variables set through Controller.Set and wrapped in
// "layouts/<Layout>". The response format follows the request:
//
//   - Accept: application/json renders the variables as JSON.
//   - ?format=csv, xls or xlsx renders the "<action>_csv" view as a download.
//   - XMLHttpRequest and htmx calls skip the layout.
//
// Set AutoRender to false to write the response yourself, call Redirect to
// answer with a 3xx, or RedirectInternal to dispatch another URL in-process.
//
// # Errors
//
// Errors and panics produce
//
//	{"success":false,"error":"<message>"}
//
// with the status of the HTTPError in the chain, or 500. WithTesting makes
// every failure answer 200 so test clients can read the envelope.
//
// # Command line
//
// RunCLI dispatches one URL and prints the body, so the same controllers
// serve cron jobs:
//
//	mvc.RunCLI(ctx, app, []string{"/reports/rebuild"}, os.Stdout)
//
// # Shutdown
//
// Run handles SIGINT/SIGTERM. Workers registered with WithWorkers are started
// before the listener opens and stopped after the server drains.
package mvc
