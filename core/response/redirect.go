package response

import (
	"net/http"

	"github.com/dmitrymomot/itemdesk/core/handler"
)

// Redirect creates a 302 Found response. htmx requests get HX-Location with
// 200 OK instead, since htmx would otherwise swap the redirect target into the page.
func Redirect(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusFound)
}

// RedirectSeeOther creates a 303 See Other response, used after form posts.
func RedirectSeeOther(url string) handler.Response {
	return RedirectWithStatus(url, http.StatusSeeOther)
}

// RedirectWithStatus redirects with a custom 3xx status, defaulting to 302.
func RedirectWithStatus(url string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if IsHTMXRequest(r) {
			w.Header().Set(HeaderHXLocation, url)
			w.WriteHeader(http.StatusOK)
			return nil
		}
		if status < 300 || status >= 400 {
			status = http.StatusFound
		}
		http.Redirect(w, r, url, status)
		return nil
	}
}
