package htmx

import (
	"net/http"
	"strings"
)

// IsHTMX reports whether r was sent by htmx.
func IsHTMX(r *http.Request) bool {
	return r != nil && r.Header.Get(HeaderHXRequest) == "true"
}

// IsBoosted reports whether r comes from an hx-boost link or form.
func IsBoosted(r *http.Request) bool {
	return r != nil && r.Header.Get(HeaderHXBoosted) == "true"
}

// Redirect prepares h for a redirect to url and returns the status to
// answer with. htmx does not follow 3xx responses made by XMLHttpRequest,
// so htmx requests get HX-Redirect with 200; others get Location and status.
func Redirect(h http.Header, r *http.Request, url string, status int) int {
	if IsHTMX(r) {
		h.Set(HeaderHXRedirect, url)
		return http.StatusOK
	}
	h.Set("Location", url)
	return status
}

// Trigger adds client-side events fired when the response is swapped in.
func Trigger(h http.Header, events ...string) {
	if len(events) == 0 {
		return
	}
	if prev := h.Get(HeaderHXTrigger); prev != "" {
		events = append([]string{prev}, events...)
	}
	h.Set(HeaderHXTrigger, strings.Join(events, ", "))
}

// Refresh makes htmx reload the whole page.
func Refresh(h http.Header) {
	h.Set(HeaderHXRefresh, "true")
}

// Retarget swaps the response into the element matching selector.
func Retarget(h http.Header, selector string) {
	h.Set(HeaderHXRetarget, selector)
}

// PushURL pushes url into the browser history.
func PushURL(h http.Header, url string) {
	h.Set(HeaderHXPushURL, url)
}
