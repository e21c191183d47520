package middleware

import (
	"net/http"
	"net/url"

	"github.com/dmitrymomot/itemdesk/core/handler"
	"github.com/dmitrymomot/itemdesk/core/response"
)

// SameOrigin rejects unsafe requests whose Origin (or, failing that,
// Referer) names another host. The local session is not bound to a cookie,
// so a cross-site form post would otherwise act as the signed-in user.
// Requests carrying neither header pass, as non-browser clients send none.
func SameOrigin[C handler.Context]() handler.Middleware[C] {
	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			req := ctx.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(ctx)
			}

			source := req.Header.Get("Origin")
			if source == "" || source == "null" {
				source = req.Header.Get("Referer")
			}
			if source == "" {
				return next(ctx)
			}

			u, err := url.Parse(source)
			if err != nil || u.Host != req.Host {
				return response.Error(response.ErrForbidden.WithMessage("Cross-origin request rejected"))
			}
			return next(ctx)
		}
	}
}
