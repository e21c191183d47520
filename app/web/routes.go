package web

import (
	"github.com/dmitrymomot/itemdesk/core/guard"
	"github.com/dmitrymomot/itemdesk/core/handler"
	"github.com/dmitrymomot/itemdesk/core/health"
	"github.com/dmitrymomot/itemdesk/core/router"
	"github.com/dmitrymomot/itemdesk/middleware"
)

func (a *App) routes() router.Router[*Context] {
	r := router.New[*Context](
		router.WithContextFactory(newContext),
		router.WithErrorHandler(a.errorHandler),
		router.WithLogger[*Context](a.logger),
		router.WithMiddleware(
			middleware.RequestID[*Context](),
			middleware.LoggingWithLogger[*Context](a.logger),
			middleware.Metrics[*Context](a.metrics),
			middleware.SecurityHeaders[*Context](),
			middleware.SameOrigin[*Context](),
			middleware.BodyLimit[*Context](0),
			middleware.AuthProvider[*Context](a.facade),
		),
	)

	r.Get("/health/live", health.Liveness[*Context])
	r.Get("/health/ready", health.Readiness[*Context](a.logger, a.checks...))
	r.Get("/metrics", handler.FromHTTP[*Context](a.metrics.Handler()))

	r.With(a.guard("/")).Get("/", a.home)

	r.With(a.guard("/items")).Group(func(r router.Router[*Context]) {
		r.Get("/items", a.listItems)
		r.Post("/items", a.createItem)
		r.Get("/items/{id}/edit", a.editItem)
		r.Post("/items/{id}", a.updateItem)
		r.Post("/items/{id}/status", a.setItemStatus)
		r.Get("/items/{id}/delete", a.confirmDeleteItem)
		r.Post("/items/{id}/delete", a.deleteItem)
	})

	r.With(a.guard("/sign-in")).Group(func(r router.Router[*Context]) {
		r.Get("/sign-in", a.signInPage)
		r.Post("/sign-in", a.signIn)
	})
	r.With(a.guard("/sign-up")).Group(func(r router.Router[*Context]) {
		r.Get("/sign-up", a.signUpPage)
		r.Post("/sign-up", a.signUp)
	})

	r.Post("/logout", a.logout)
	r.With(a.guard("/session/refresh")).Post("/session/refresh", a.refreshSession)

	return r
}

// guard attaches the navigation policy registered for path.
func (a *App) guard(path string) handler.Middleware[*Context] {
	return middleware.Guard[*Context](guard.PolicyFor(path), a.logger)
}
