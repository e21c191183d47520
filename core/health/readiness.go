package health

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/itemdesk/core/handler"
	"github.com/dmitrymomot/itemdesk/core/logger"
	"github.com/dmitrymomot/itemdesk/core/response"
)

// Check is one named dependency check.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// Readiness runs every check and answers "READY", or 503 with the names of
// the failing checks.
func Readiness[C handler.Context](log *slog.Logger, checks ...Check) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		var failed []string
		for _, c := range checks {
			if err := c.Fn(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					logger.Component("health"),
					slog.String("check", c.Name),
					logger.Error(err),
				)
				failed = append(failed, c.Name)
			}
		}

		if len(failed) > 0 {
			return response.StringWithStatus(
				response.ErrServiceUnavailable.Message+": "+strings.Join(failed, ", "),
				response.ErrServiceUnavailable.Status,
			)
		}
		return response.String("READY")
	}
}
