package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors of the dispatch pipeline.
var (
	ErrControllerNotFound = errors.New("controller not found")
	ErrActionNotFound     = errors.New("action not found")
	ErrModelNotFound      = errors.New("model not found")
	ErrComponentNotFound  = errors.New("component not found")
	ErrHelperNotFound     = errors.New("helper not found")
	ErrViewNotFound       = errors.New("view not found")
	ErrNoEngine           = errors.New("no view engine configured")
	ErrTooManyRedirects   = errors.New("too many internal redirects")
	ErrURLMissing         = errors.New("URL is missing")
	ErrStartup            = errors.New("startup hook failed")
)

// HTTPError is the single error kind surfaced by a dispatch.
// Code is optional; zero means the error carries no status.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Message is the user-facing error message.
	Message string

	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Errorf creates an HTTPError with a formatted message.
func Errorf(code int, format string, args ...any) *HTTPError {
	return NewHTTPError(code, fmt.Sprintf(format, args...))
}

// Wrap attaches a status code to err. The message is err's message.
func Wrap(code int, err error) *HTTPError {
	return &HTTPError{Code: code, Message: err.Error(), Err: err}
}

func ErrBadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

func ErrForbidden(message string) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message)
}

func ErrNotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

func ErrInternal(message string) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message)
}

// AsHTTPError extracts the HTTPError from an error chain if present.
// Returns nil if the error is not an HTTPError.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// envelope is the JSON body written for failed dispatches.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ErrorResponse converts err into the failure envelope.
// The status is the error's code, 500 when it is not a valid HTTP status,
// and always 200 when testing is set.
func ErrorResponse(err error, testing bool) *Response {
	status := http.StatusInternalServerError
	if httpErr := AsHTTPError(err); httpErr != nil && httpErr.Code >= 100 && httpErr.Code <= 599 {
		status = httpErr.Code
	}
	if testing {
		status = http.StatusOK
	}

	body, merr := json.Marshal(envelope{Error: err.Error()})
	if merr != nil {
		body = []byte(`{"success":false,"error":"internal error"}`)
	}

	resp := NewResponse(status)
	resp.Header().Set("Content-Type", contentTypeJSON)
	resp.Body.Write(body)
	return resp
}
