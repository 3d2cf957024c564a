// Package templview is a view engine for [github.com/a-h/templ] components.
//
// Components are registered by view name; each receives the view data:
//
//	engine := templview.New().
//		Register("posts/index", func(d *mvc.ViewData) templ.Component {
//			return views.PostList(d.Get("posts").([]Post))
//		}).
//		Register("layouts/default", func(d *mvc.ViewData) templ.Component {
//			return views.Layout(d.Get("page_title"), templview.Content(d))
//		})
//
//	app := mvc.New(mvc.WithEngine(engine))
package templview
