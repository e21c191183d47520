package router

import "github.com/dmitrymomot/itemdesk/core/handler"

// chain wraps h so that middlewares[0] runs first.
func chain[C handler.Context](middlewares []handler.Middleware[C], h handler.HandlerFunc[C]) handler.HandlerFunc[C] {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
