package health_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/itemdesk/core/health"
	"github.com/dmitrymomot/itemdesk/core/router"
)

func TestHealth(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ok := health.Check{Name: "ok", Fn: func(context.Context) error { return nil }}
	bad := health.Check{Name: "redis", Fn: func(context.Context) error { return errors.New("down") }}

	r := router.New[*router.Context]()
	r.Get("/live", health.Liveness[*router.Context])
	r.Get("/ready", health.Readiness[*router.Context](log, ok))
	r.Get("/not-ready", health.Readiness[*router.Context](log, ok, bad))

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/live", http.StatusOK, "ALIVE"},
		{"/ready", http.StatusOK, "READY"},
		{"/not-ready", http.StatusServiceUnavailable, "Service Unavailable: redis"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
}
