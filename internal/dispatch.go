package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"time"

	"github.com/dmitrymomot/mvc/pkg/export"
	"github.com/dmitrymomot/mvc/pkg/htmx"
	"github.com/dmitrymomot/mvc/pkg/logger"
)

// maxInternalRedirects bounds RedirectInternal chains.
const maxInternalRedirects = 10

// ErrorHandler turns a failed dispatch into a response.
type ErrorHandler func(req *Request, err error) *Response

// DispatchObserver is notified once per finished dispatch.
type DispatchObserver interface {
	ObserveDispatch(controller, action string, status int, elapsed time.Duration)
}

// Dispatch runs the full pipeline for r and returns the complete response.
// It never writes to the client and never panics.
func (a *App) Dispatch(r *http.Request) *Response {
	return a.dispatch(r, 0)
}

// ServeHTTP dispatches r and sends the response.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := a.Dispatch(r)
	if err := resp.Send(w); err != nil {
		a.logger.WarnContext(r.Context(), "failed to write response", slog.Any("error", err))
	}
}

func (a *App) dispatch(r *http.Request, depth int) *Response {
	start := time.Now()
	req := NewRequest(r, a.home)

	resp, err := a.run(r, req, depth)
	if err != nil {
		resp = a.fail(r.Context(), req, err)
	}

	if a.observer != nil {
		a.observer.ObserveDispatch(req.Controller, req.Action, resp.Status, time.Since(start))
	}
	return resp
}

// run executes resolve, prepare, hook, invoke and render.
func (a *App) run(r *http.Request, req *Request, depth int) (resp *Response, err error) {
	defer func() {
		if v := recover(); v != nil {
			a.logger.ErrorContext(r.Context(), "controller panic",
				slog.Any("panic", v),
				slog.String("stack", string(debug.Stack())),
			)
			resp, err = nil, Errorf(http.StatusInternalServerError, "panic: %v", v)
		}
	}()

	factory, ok := a.registry.Controller(req.Controller)
	if !ok {
		return nil, &HTTPError{
			Code:    http.StatusNotFound,
			Message: "Controller not found: " + req.Controller,
			Err:     ErrControllerNotFound,
		}
	}
	h := factory()
	c := h.Base()

	ctx := logger.WithAttrs(r.Context(),
		slog.String("controller", req.Controller),
		slog.String("action", req.Action),
	)
	resp = NewResponse(http.StatusOK)
	c.prepare(ctx, a, req, resp)
	for _, name := range c.Uses {
		if _, err := c.LoadModel(name); err != nil {
			return nil, err
		}
	}
	for _, name := range c.Components {
		if _, err := c.LoadComponent(name); err != nil {
			return nil, err
		}
	}

	if f, ok := h.(BeforeFilter); ok {
		if err := f.BeforeFilter(); err != nil {
			return nil, err
		}
	}

	if !c.Redirected() {
		action, ok := lookupAction(h.Actions(), req.Action)
		if !ok {
			return nil, &HTTPError{
				Code:    http.StatusNotFound,
				Message: "Action not found: " + req.Controller + "/" + req.Action,
				Err:     ErrActionNotFound,
			}
		}
		if err := action(req.Params...); err != nil {
			return nil, err
		}
	}

	if c.redirect == nil {
		if err := a.render(c, resp); err != nil {
			return nil, err
		}
	}

	if c.session != nil {
		if err := a.sessions.Save(r.Context(), resp, c.session); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
	}

	if c.redirect != nil {
		return a.redirect(r, resp, c.redirect, depth)
	}
	return resp, nil
}

func (a *App) redirect(r *http.Request, resp *Response, rd *redirect, depth int) (*Response, error) {
	if !rd.internal {
		resp.Body.Reset()
		resp.WriteHeader(htmx.Redirect(resp.Header(), r, rd.url, rd.status))
		return resp, nil
	}

	if depth+1 > maxInternalRedirects {
		return nil, &HTTPError{
			Code:    http.StatusInternalServerError,
			Message: ErrTooManyRedirects.Error(),
			Err:     ErrTooManyRedirects,
		}
	}

	target, err := url.Parse(rd.url)
	if err != nil {
		return nil, Wrap(http.StatusInternalServerError, err)
	}
	next := r.Clone(r.Context())
	next.URL.Path = target.Path
	next.URL.RawPath = target.RawPath
	next.URL.RawQuery = target.RawQuery
	next.RequestURI = target.RequestURI()

	// Cookies issued so far must be visible to the next dispatch.
	issued := (&http.Response{Header: resp.Header()}).Cookies()
	for _, ck := range issued {
		next.AddCookie(ck)
	}

	inner := a.dispatch(next, depth+1)
	for _, v := range resp.Header().Values("Set-Cookie") {
		inner.Header().Add("Set-Cookie", v)
	}
	return inner, nil
}

// render produces the response body once the action has returned.
func (a *App) render(c *Controller, resp *Response) error {
	if !c.AutoRender {
		resp.Body.Write(c.out.Bytes())
		return nil
	}

	req := c.Request
	if !c.hasRendered {
		format := req.VarOr("format", "")
		switch {
		case req.IsJSON():
			body, err := json.Marshal(c.Vars.Without(LayoutVars...))
			if err != nil {
				return fmt.Errorf("encode vars: %w", err)
			}
			resp.Header().Set("Content-Type", contentTypeJSON)
			resp.Body.Write(body)
			return nil
		case format == "csv" || format == "xls":
			return a.renderSheet(c, resp, format)
		case format == "xlsx":
			return a.renderWorkbook(c, resp)
		default:
			if err := c.Render(""); err != nil {
				return err
			}
		}
	}

	if req.IsAjax() || req.IsJSON() || c.Layout == "" {
		resp.Body.Write(c.out.Bytes())
		return nil
	}
	return a.renderLayout(c, resp)
}

func (a *App) renderLayout(c *Controller, resp *Response) error {
	content := c.out.String()
	vars := NewVars()
	vars.Set("content", content)
	for _, k := range LayoutVars {
		if v, ok := c.Vars.Get(k); ok {
			vars.Set(k, v)
		}
	}

	v := NewView(a.engine, a.registry, "layouts/"+c.Layout, vars, c.Request)
	v.data.Content = content
	if err := v.LoadHelpers(c.Helpers); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := v.Render(&buf); err != nil {
		return err
	}
	if resp.Header().Get("Content-Type") == "" {
		resp.Header().Set("Content-Type", contentTypeHTML)
	}
	resp.Body.Write(buf.Bytes())
	return nil
}

// renderSheet renders the "<action>_csv" view as a CSV or XLS download.
func (a *App) renderSheet(c *Controller, resp *Response, format string) error {
	if err := c.Render(c.Request.Action + "_csv"); err != nil {
		return err
	}
	contentType := contentTypeCSV
	if format == "xls" {
		contentType = contentTypeXLS
	}
	resp.Header().Set("Content-Type", contentType)
	resp.Header().Set("Content-Disposition", "attachment; filename="+a.exportName(c.Request, format))
	resp.Body.Write(utf8BOM)
	resp.Body.Write(c.out.Bytes())
	return nil
}

// renderWorkbook converts the "<action>_csv" view into an xlsx workbook.
func (a *App) renderWorkbook(c *Controller, resp *Response) error {
	if err := c.Render(c.Request.Action + "_csv"); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := export.CSVToXLSX(&buf, &c.out, c.Request.Action); err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}
	resp.Header().Set("Content-Type", contentTypeXLSX)
	resp.Header().Set("Content-Disposition", "attachment; filename="+a.exportName(c.Request, "xlsx"))
	resp.Body.Write(buf.Bytes())
	return nil
}

func (a *App) exportName(req *Request, format string) string {
	return fmt.Sprintf("%s_%s_%s.%s", req.Controller, req.Action, a.clock().Format("20060102_1504"), format)
}

// fail logs err and builds the failure response.
func (a *App) fail(ctx context.Context, req *Request, err error) *Response {
	a.logger.ErrorContext(ctx, "dispatch failed",
		slog.String("controller", req.Controller),
		slog.String("action", req.Action),
		slog.Any("error", err),
	)
	if a.errorHandler != nil {
		if resp := a.errorHandler(req, err); resp != nil {
			return resp
		}
	}
	return ErrorResponse(err, a.testing)
}
