// Package handler defines the request handling contract shared by the router,
// the middleware and the application pages.
//
// A handler receives a typed Context and returns a Response. The Response is a
// deferred render step, which lets middleware such as the route guard decide
// to replace it (for example with a redirect) without the page ever being built:
//
//	func itemsPage(ctx *web.Context) handler.Response {
//		items, err := client.List(ctx, itemservice.Filters{})
//		if err != nil {
//			return response.Error(err)
//		}
//		return response.Templ(ui.ItemsPage(items))
//	}
//
// Middleware composes by wrapping HandlerFunc values:
//
//	func Timing[C handler.Context](next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
//		return func(ctx C) handler.Response {
//			start := time.Now()
//			resp := next(ctx)
//			slog.InfoContext(ctx, "handled", "elapsed", time.Since(start))
//			return resp
//		}
//	}
package handler
