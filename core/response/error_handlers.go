package response

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/itemdesk/core/handler"
)

type statusCode interface {
	StatusCode() int
}

// AsHTTPError converts any error to an HTTPError. Errors exposing a status
// code keep it; everything else becomes a 500 carrying the cause.
func AsHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	base, ok := httpErrorsByStatus[status]
	if !ok {
		base = newHTTPError(status, "error")
	}
	return base.WithError(err)
}

// ErrorHandler renders errors as plain text.
func ErrorHandler[C handler.Context](ctx C, err error) {
	httpErr := AsHTTPError(err)
	Render(ctx, StringWithStatus(httpErr.Error(), httpErr.Status))
}
