// Package middleware provides the request pipeline of the web client.
//
// All middleware is generic over handler.Context, so it composes with any
// router.Router:
//
//	r := router.New[*router.Context]()
//	r.Use(
//		middleware.RequestID[*router.Context](),
//		middleware.LoggingWithLogger[*router.Context](log),
//		middleware.Metrics[*router.Context](m),
//		middleware.SecurityHeaders[*router.Context](),
//		middleware.BodyLimit[*router.Context](0),
//		middleware.AuthProvider[*router.Context](facade),
//	)
//	r.With(middleware.Guard[*router.Context](guard.RequireAuth, log)).Get("/items", listItems)
//
// # Auth
//
// AuthProvider opens the auth.Facade scope for every request. Guard runs a
// guard.Policy before the page handler: Allow calls the handler, Redirect
// answers with an htmx-aware redirect and never calls it. A missing provider
// is a wiring error that reaches the router error handler as a 500.
//
// # Request IDs
//
// RequestID stores a UUID per request. RequestIDExtractor plugs it into
// logger.WithContextExtractors so every record logged with a request
// context carries request_id.
package middleware
