// Package router provides a generic HTTP router for handler.HandlerFunc values.
//
// Matching is delegated to a chi routing tree; this package adds typed request
// contexts, deferred responses, a single error handler and panic recovery.
//
//	r := router.New[*web.Context](
//		router.WithContextFactory(web.NewContext),
//		router.WithErrorHandler(web.ErrorPage),
//		router.WithMiddleware(middleware.RequestID[*web.Context]()),
//	)
//
//	r.Group(func(private router.Router[*web.Context]) {
//		private.Use(middleware.Guard[*web.Context](guard.RequireAuth, log))
//		private.Get("/items", itemsPage)
//		private.Post("/items/{id}/delete", deleteItem)
//	})
//
// Router-wide middleware (WithMiddleware, Use on the root router) also wraps
// not-found and method-not-allowed responses, which are reported to the error
// handler as ErrNotFound and ErrMethodNotAllowed. Group middleware only wraps
// routes registered inside the group.
//
// A panic in a handler is recovered and passed to the error handler as a
// PanicError, unless the response has already started, in which case it is logged.
package router
