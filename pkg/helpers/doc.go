// Package helpers provides objects exposed to views as named helpers.
//
// Register a helper on the application and load it from a controller:
//
//	app := mvc.New(
//		mvc.WithHelper("html", func(*mvc.ViewData) any { return helpers.NewHTML("/static") }),
//	)
//
//	// in a controller
//	c.Helpers = []string{"html"}
//
// Templates then call {{ html.CSS("app.css") }} (pongo2) or the typed
// methods directly (templ).
package helpers
