// Package htmx reads htmx request headers and sets its response headers.
//
// The dispatcher uses it to treat htmx requests like XMLHttpRequest calls
// (no layout) and to turn redirects into HX-Redirect. Actions can set the
// other headers on the buffered response:
//
//	func (p *Posts) Save(params ...string) error {
//	    ...
//	    htmx.Trigger(p.Header(), "post-saved")
//	    return nil
//	}
package htmx
