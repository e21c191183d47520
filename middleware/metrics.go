package middleware

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/itemdesk/core/handler"
)

// HTTPObserver receives one observation per served request.
type HTTPObserver interface {
	ObserveHTTP(method string, status int, d time.Duration)
}

// Metrics reports method, status and duration of every request to obs.
func Metrics[C handler.Context](obs HTTPObserver) handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			start := time.Now()
			response := next(ctx)
			if response == nil {
				return nil
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
				err := response(wrapped, r)

				status := wrapped.statusCode
				if err != nil && !wrapped.headerWritten {
					status = statusOf(err)
				}
				obs.ObserveHTTP(r.Method, status, time.Since(start))
				return err
			}
		}
	}
}
