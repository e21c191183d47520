package middleware

import (
	"net/http"

	"github.com/dmitrymomot/itemdesk/core/handler"
)

// DefaultContentSecurityPolicy allows same-origin resources and the inline
// styles of the layout.
const DefaultContentSecurityPolicy = "default-src 'self'; style-src 'self' 'unsafe-inline'; frame-ancestors 'none'; form-action 'self'"

// SecurityHeadersConfig lists the headers set on every response. Empty
// values are not sent.
type SecurityHeadersConfig struct {
	ContentTypeOptions    string
	FrameOptions          string
	ContentSecurityPolicy string
	ReferrerPolicy        string
}

// DefaultSecurityHeaders suits a server-rendered client on localhost, so
// HSTS is intentionally absent.
var DefaultSecurityHeaders = SecurityHeadersConfig{
	ContentTypeOptions:    "nosniff",
	FrameOptions:          "DENY",
	ContentSecurityPolicy: DefaultContentSecurityPolicy,
	ReferrerPolicy:        "same-origin",
}

// SecurityHeaders sets DefaultSecurityHeaders.
func SecurityHeaders[C handler.Context]() handler.Middleware[C] {
	return SecurityHeadersWithConfig[C](DefaultSecurityHeaders)
}

// SecurityHeadersWithConfig sets the configured headers before the handler
// writes its response.
func SecurityHeadersWithConfig[C handler.Context](cfg SecurityHeadersConfig) handler.Middleware[C] {
	headers := make(map[string]string, 4)
	set := func(name, value string) {
		if value != "" {
			headers[name] = value
		}
	}
	set("X-Content-Type-Options", cfg.ContentTypeOptions)
	set("X-Frame-Options", cfg.FrameOptions)
	set("Content-Security-Policy", cfg.ContentSecurityPolicy)
	set("Referrer-Policy", cfg.ReferrerPolicy)

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			response := next(ctx)
			if response == nil {
				return nil
			}

			return func(w http.ResponseWriter, r *http.Request) error {
				for key, value := range headers {
					w.Header().Set(key, value)
				}
				return response(w, r)
			}
		}
	}
}
