package health

import (
	"github.com/dmitrymomot/itemdesk/core/handler"
	"github.com/dmitrymomot/itemdesk/core/response"
)

// Liveness always answers "ALIVE" with 200 OK.
func Liveness[C handler.Context](C) handler.Response {
	return response.String("ALIVE")
}
