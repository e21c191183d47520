// Package response builds handler.Response values: plain text, templ HTML,
// htmx-aware redirects and errors.
//
// Errors are returned, not written: response.Error(err) hands err to the
// router's error handler, which can use AsHTTPError to find a status and a
// user-facing message.
//
//	if errors.Is(err, itemservice.ErrNotFound) {
//		return response.Error(response.ErrNotFound.WithMessage("Item not found"))
//	}
//	return response.RedirectSeeOther("/items")
package response
