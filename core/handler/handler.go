package handler

import "net/http"

// Response renders the outcome of a handler. It runs after the handler returns,
// so middleware can still decorate it (headers, cookies) before anything is written.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc handles a request with a typed context.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler renders errors returned by a Response or raised by the router.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps a HandlerFunc.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]

// FromHTTP adapts a plain http.Handler (metrics exporters, file servers) to a HandlerFunc.
func FromHTTP[C Context](h http.Handler) HandlerFunc[C] {
	return func(ctx C) Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			h.ServeHTTP(w, r)
			return nil
		}
	}
}
