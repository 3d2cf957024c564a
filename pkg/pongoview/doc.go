// Package pongoview is a view engine backed by [github.com/flosch/pongo2/v6]
// Django-style templates.
//
//	//go:embed views
//	var views embed.FS
//
//	sub, _ := fs.Sub(views, "views")
//	app := mvc.New(mvc.WithEngine(pongoview.New(sub)))
//
// Layouts live under "layouts/" and print the action output with
// {{ content|safe }}. Elements under "elements/" are included with
// {{ element("name")|safe }}.
package pongoview
