package response

import "net/http"

const (
	// HeaderHXRequest is sent by htmx on every request it issues.
	HeaderHXRequest = "HX-Request"
	// HeaderHXLocation tells htmx to navigate client side instead of following a 3xx.
	HeaderHXLocation = "HX-Location"
	// HeaderHXTrigger fires client side events, used for toasts on partial updates.
	HeaderHXTrigger = "HX-Trigger"
)

// IsHTMXRequest reports whether r was issued by htmx.
func IsHTMXRequest(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}
