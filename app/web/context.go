package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/itemdesk/core/binder"
	"github.com/dmitrymomot/itemdesk/core/sanitizer"
	"github.com/dmitrymomot/itemdesk/core/validator"
)

// Context is the handler.Context of the web client.
type Context struct {
	w      http.ResponseWriter
	r      *http.Request
	params map[string]string
}

func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

func (c *Context) Err() error {
	return c.r.Context().Err()
}

func (c *Context) Value(key any) any {
	return c.r.Context().Value(key)
}

// SetValue stores a value in the request's context.
func (c *Context) SetValue(key, val any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, val))
}

func (c *Context) Request() *http.Request {
	return c.r
}

func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Param returns the value of the URL parameter for the given key.
func (c *Context) Param(key string) string {
	if c.params == nil {
		return ""
	}
	return c.params[key]
}

var (
	bindForm  = binder.All(binder.Path(paramFromRequest), binder.Form())
	bindQuery = binder.Query()
)

// Bind fills v from the route parameters and the form body, sanitizes it and
// validates it. Validation failures are returned as validator.ValidationErrors.
func (c *Context) Bind(v any) error {
	return c.bind(bindForm, v)
}

// BindQuery is Bind for URL query parameters.
func (c *Context) BindQuery(v any) error {
	return c.bind(bindQuery, v)
}

func (c *Context) bind(b binder.Binder, v any) error {
	if err := b(c.r, v); err != nil {
		return err
	}
	if err := sanitizer.SanitizeStruct(v); err != nil {
		return err
	}
	return validator.ValidateStruct(v)
}

func newContext(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
	return &Context{
		w:      w,
		r:      r,
		params: params,
	}
}

func paramFromRequest(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}
