package middleware

import (
	"fmt"
	"net/http"

	"github.com/dmitrymomot/itemdesk/core/handler"
	"github.com/dmitrymomot/itemdesk/core/response"
)

// Common size constants for convenience
const (
	KB int64 = 1024
	MB       = 1024 * KB
)

// DefaultBodyLimit covers any form the client renders.
const DefaultBodyLimit = 1 * MB

// BodyLimit rejects requests whose declared Content-Length exceeds maxSize
// with 413 and caps the body reader for the rest. maxSize <= 0 means
// DefaultBodyLimit.
func BodyLimit[C handler.Context](maxSize int64) handler.Middleware[C] {
	if maxSize <= 0 {
		maxSize = DefaultBodyLimit
	}

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			req := ctx.Request()
			if req.ContentLength > maxSize {
				return response.Error(response.ErrRequestEntityTooLarge.WithMessage(
					fmt.Sprintf("Request body too large. Maximum allowed: %d bytes", maxSize),
				))
			}
			if req.Body != nil && req.Body != http.NoBody {
				req.Body = http.MaxBytesReader(ctx.ResponseWriter(), req.Body, maxSize)
			}
			return next(ctx)
		}
	}
}
