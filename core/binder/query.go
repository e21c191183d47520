package binder

import "net/http"

// Query binds URL query parameters using `query:"name"` tags. Slices accept
// repeated parameters or comma-separated values (?status=draft,active).
func Query() Binder {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrFailedToParseQuery)
	}
}
