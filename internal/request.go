package internal

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/mvc/pkg/htmx"
)

// DefaultHome is the route used when the path has no segments.
const DefaultHome = "/pages"

// DefaultAction is the action used when the path names only a controller.
const DefaultAction = "index"

// Request is the parsed form of one incoming call.
// It is immutable after construction.
type Request struct {
	raw        *http.Request
	Controller string   `json:"controller"`
	Action     string   `json:"action"`
	Params     []string `json:"params"`
}

// ParseURL splits a URL into controller, action and positional parameters.
// The query string and surrounding slashes are ignored. An empty path
// falls back to home. Segments are split before percent-decoding, so an
// encoded slash stays inside its parameter.
func ParseURL(rawURL, home string) (controller, action string, params []string) {
	if i := strings.IndexByte(rawURL, '?'); i >= 0 {
		rawURL = rawURL[:i]
	}
	rawURL = strings.Trim(rawURL, "/")
	if rawURL == "" {
		rawURL = strings.Trim(home, "/")
	}

	segments := strings.Split(rawURL, "/")
	for i, seg := range segments {
		if v, err := url.PathUnescape(seg); err == nil {
			segments[i] = v
		}
	}
	controller = segments[0]
	action = DefaultAction
	if len(segments) > 1 {
		action = segments[1]
		params = segments[2:]
	}
	if params == nil {
		params = []string{}
	}
	return controller, action, params
}

// NewRequest builds a Request from an HTTP request path.
func NewRequest(r *http.Request, home string) *Request {
	controller, action, params := ParseURL(r.URL.EscapedPath(), home)
	return &Request{
		raw:        r,
		Controller: controller,
		Action:     action,
		Params:     params,
	}
}

// HTTPRequest returns the underlying HTTP request.
func (r *Request) HTTPRequest() *http.Request {
	return r.raw
}

// Var returns a GET or POST variable.
// Keys may address nested form fields, e.g. "Customer[message]". POST data
// is used whenever it carries the top-level key, GET data otherwise.
// A bare prefix such as "Customer" only matches a field of that exact
// name; use VarMap for the nested fields.
func (r *Request) Var(key string) (string, bool) {
	if r.raw == nil {
		return "", false
	}
	values := r.raw.URL.Query()
	if r.postHas(topKey(key)) {
		values = r.raw.PostForm
	}
	vals, ok := values[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// VarOr returns a GET or POST variable or def when it is not set.
func (r *Request) VarOr(key, def string) string {
	if v, ok := r.Var(key); ok {
		return v
	}
	return def
}

// VarSlice returns all values of a repeated GET or POST variable.
func (r *Request) VarSlice(key string) []string {
	if r.raw == nil {
		return nil
	}
	if r.postHas(topKey(key)) {
		return r.raw.PostForm[key]
	}
	return r.raw.URL.Query()[key]
}

// VarMap returns the nested fields posted under prefix, keyed by the part
// inside the first brackets. "Customer[message]" is returned as "message"
// and "Customer[addr][city]" as "addr[city]". Source selection follows Var.
func (r *Request) VarMap(prefix string) url.Values {
	out := url.Values{}
	if r.raw == nil {
		return out
	}
	values := r.raw.URL.Query()
	if r.postHas(prefix) {
		values = r.raw.PostForm
	}
	for k, vals := range values {
		rest, ok := strings.CutPrefix(k, prefix+"[")
		if !ok {
			continue
		}
		sub, tail, ok := strings.Cut(rest, "]")
		if !ok {
			continue
		}
		out[sub+tail] = append(out[sub+tail], vals...)
	}
	return out
}

func (r *Request) postHas(top string) bool {
	if r.raw.PostForm == nil && r.raw.Body != nil && r.raw.Method == http.MethodPost {
		_ = r.raw.ParseForm()
	}
	for k := range r.raw.PostForm {
		if k == top || strings.HasPrefix(k, top+"[") {
			return true
		}
	}
	return false
}

func topKey(key string) string {
	if i := strings.IndexByte(key, '['); i >= 0 {
		return key[:i]
	}
	return key
}

// IsAjax reports whether the call was made through XMLHttpRequest or htmx.
func (r *Request) IsAjax() bool {
	if r.raw == nil {
		return false
	}
	return strings.EqualFold(r.raw.Header.Get("X-Requested-With"), "xmlhttprequest") || htmx.IsHTMX(r.raw)
}

// IsJSON reports whether the client expects a JSON response.
func (r *Request) IsJSON() bool {
	if r.raw == nil {
		return false
	}
	accept := r.raw.Header.Get("Accept")
	if len(accept) > 16 {
		accept = accept[:16]
	}
	return strings.ToLower(accept) == "application/json"
}

// IsPost reports whether the call is a POST.
func (r *Request) IsPost() bool {
	return r.raw != nil && r.raw.Method == http.MethodPost
}

// URL returns the request path without the query string.
func (r *Request) URL() string {
	if r.raw == nil {
		return ""
	}
	return r.raw.URL.Path
}

// FullURL returns an absolute URL for path on the current host.
func (r *Request) FullURL(path string) string {
	scheme := "http"
	host := ""
	if r.raw != nil {
		host = r.raw.Host
		if r.raw.TLS != nil ||
			strings.EqualFold(r.raw.Header.Get("X-Forwarded-Proto"), "https") ||
			strings.HasSuffix(host, ":443") {
			scheme = "https"
		}
	}
	return scheme + "://" + host + path
}
