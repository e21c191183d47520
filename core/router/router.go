package router

import (
	"net/http"

	"github.com/dmitrymomot/itemdesk/core/handler"
)

// Router registers typed handlers and serves them as an http.Handler.
type Router[C handler.Context] interface {
	http.Handler
	Routes

	Get(pattern string, h handler.HandlerFunc[C])
	Post(pattern string, h handler.HandlerFunc[C])
	Put(pattern string, h handler.HandlerFunc[C])
	Patch(pattern string, h handler.HandlerFunc[C])
	Delete(pattern string, h handler.HandlerFunc[C])

	// Handle registers h for every HTTP method.
	Handle(pattern string, h handler.HandlerFunc[C])
	Method(pattern string, h handler.HandlerFunc[C], methods ...string)

	Use(middlewares ...handler.Middleware[C])
	With(middlewares ...handler.Middleware[C]) Router[C]
	Group(fn func(r Router[C])) Router[C]
}

// Routes provides route introspection.
type Routes interface {
	Routes() []Route
}

// Route describes a registered method and pattern.
type Route struct {
	Method  string
	Pattern string
}

// New creates a router. Without WithContextFactory the context type must be *Context.
func New[C handler.Context](opts ...Option[C]) Router[C] {
	return newMux[C](opts...)
}
