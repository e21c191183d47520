package middleware

import (
	"log/slog"

	"github.com/dmitrymomot/itemdesk/core/auth"
	"github.com/dmitrymomot/itemdesk/core/guard"
	"github.com/dmitrymomot/itemdesk/core/handler"
	"github.com/dmitrymomot/itemdesk/core/logger"
	"github.com/dmitrymomot/itemdesk/core/response"
)

// AuthProvider makes f available to everything below it through auth.FromContext.
func AuthProvider[C handler.Context](f *auth.Facade) handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			auth.Provide(ctx, f)
			return next(ctx)
		}
	}
}

// Guard evaluates policy against the current session before the handler is
// invoked. On Redirect the handler never runs. Wiring errors (no facade in
// scope, uninitialized session) are logged and handed to the router error
// handler.
func Guard[C handler.Context](policy guard.Policy, log *slog.Logger) handler.Middleware[C] {
	if log == nil {
		log = slog.Default()
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			decision, err := evaluate(ctx, policy)
			if err != nil {
				log.ErrorContext(ctx, "route guard misconfigured",
					logger.Component("guard"),
					logger.Path(ctx.Request().URL.Path),
					slog.String("policy", policy.String()),
					logger.Error(err),
				)
				return response.Error(err)
			}

			if decision.Kind == guard.Redirect {
				return response.Redirect(decision.Target)
			}
			return next(ctx)
		}
	}
}

func evaluate(ctx handler.Context, policy guard.Policy) (guard.Decision, error) {
	f, err := auth.FromContext(ctx)
	if err != nil {
		return guard.Decision{}, err
	}
	sess := f.Snapshot()
	return guard.Evaluate(policy, &sess)
}
