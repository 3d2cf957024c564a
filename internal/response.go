package internal

import (
	"bytes"
	"net/http"
	"strconv"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeCSV  = "application/csv; charset=utf-8"
	contentTypeXLS  = "application/vnd.ms-excel; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// utf8BOM prefixes spreadsheet downloads so Excel detects the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Response is the fully rendered result of one dispatch.
// It implements http.ResponseWriter so cookie and session helpers can
// write into it, but nothing reaches the client until Send is called.
type Response struct {
	header http.Header
	Body   bytes.Buffer
	Status int
}

// NewResponse creates an empty response with the given status.
func NewResponse(status int) *Response {
	return &Response{
		Status: status,
		header: make(http.Header),
	}
}

// Header returns the response headers.
func (r *Response) Header() http.Header {
	return r.header
}

// Write appends b to the body.
func (r *Response) Write(b []byte) (int, error) {
	return r.Body.Write(b)
}

// WriteHeader sets the status code.
func (r *Response) WriteHeader(code int) {
	r.Status = code
}

// Reset drops the body and headers set so far.
func (r *Response) Reset() {
	r.Body.Reset()
	clear(r.header)
	r.Status = http.StatusOK
}

// Send writes the response to w.
func (r *Response) Send(w http.ResponseWriter) error {
	h := w.Header()
	for k, v := range r.header {
		h[k] = v
	}
	if h.Get("Content-Type") == "" && r.Body.Len() > 0 {
		h.Set("Content-Type", contentTypeHTML)
	}
	h.Set("Content-Length", strconv.Itoa(r.Body.Len()))
	w.WriteHeader(r.Status)
	_, err := w.Write(r.Body.Bytes())
	return err
}
