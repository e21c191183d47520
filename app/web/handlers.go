package web

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/itemdesk/app/web/ui"
	"github.com/dmitrymomot/itemdesk/core/auth"
	"github.com/dmitrymomot/itemdesk/core/logger"
	"github.com/dmitrymomot/itemdesk/core/response"
	"github.com/dmitrymomot/itemdesk/core/validator"
	"github.com/dmitrymomot/itemdesk/integration/rpc"
)

const genericErrorMessage = "Something went wrong. Please try again."

// facade resolves the auth facade provided for this request.
func facade(ctx *Context) (*auth.Facade, error) {
	return auth.FromContext(ctx)
}

// formErrors returns the field messages of a validation failure. Anything
// else is a malformed request.
func formErrors(err error) (map[string]string, error) {
	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
		return verrs.Fields(), nil
	}
	return nil, response.ErrBadRequest.WithError(err)
}

// remoteFailed logs a failed service call and turns it into a toast message.
func (a *App) remoteFailed(ctx *Context, action string, err error) string {
	a.logger.WarnContext(ctx, "remote call failed",
		logger.Component("web"),
		logger.Action(action),
		logger.Error(err),
		slog.String("rpc_code", string(rpc.CodeOf(err))),
	)
	return rpc.UserMessage(err)
}

// errorHandler renders failures as an HTML error page. Server errors are
// logged and their details hidden.
func (a *App) errorHandler(ctx *Context, err error) {
	if w, ok := ctx.ResponseWriter().(interface{ Written() bool }); ok && w.Written() {
		a.logger.ErrorContext(ctx, "error after response written",
			logger.Component("web"), logger.Error(err))
		return
	}

	httpErr := response.AsHTTPError(err)
	message := httpErr.Message
	if httpErr.Status >= http.StatusInternalServerError {
		a.logger.ErrorContext(ctx, "request failed",
			logger.Component("web"),
			logger.Error(err),
			logger.StatusCode(httpErr.Status),
		)
		message = genericErrorMessage
	}

	p := a.page(ctx, http.StatusText(httpErr.Status))
	response.Render(ctx, response.TemplWithStatus(ui.ErrorPage(p, httpErr.Status, message), httpErr.Status))
}
