package response_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/itemdesk/core/response"
)

func TestRedirect(t *testing.T) {
	t.Parallel()

	t.Run("regular request gets 302", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/items", nil)
		w := httptest.NewRecorder()

		require.NoError(t, response.Redirect("/sign-in")(w, req))

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/sign-in", w.Header().Get("Location"))
	})

	t.Run("htmx request gets HX-Location", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/items", nil)
		req.Header.Set(response.HeaderHXRequest, "true")
		w := httptest.NewRecorder()

		require.NoError(t, response.Redirect("/sign-in")(w, req))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "/sign-in", w.Header().Get(response.HeaderHXLocation))
		assert.Empty(t, w.Header().Get("Location"))
	})

	t.Run("see other after post", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/items", nil)
		w := httptest.NewRecorder()

		require.NoError(t, response.RedirectSeeOther("/items")(w, req))

		assert.Equal(t, http.StatusSeeOther, w.Code)
	})

	t.Run("invalid status falls back to 302", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		require.NoError(t, response.RedirectWithStatus("/", http.StatusOK)(w, req))

		assert.Equal(t, http.StatusFound, w.Code)
	})
}

func TestTempl(t *testing.T) {
	t.Parallel()

	t.Run("renders component with request context", func(t *testing.T) {
		t.Parallel()

		type key struct{}
		component := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := fmt.Fprintf(w, "<p>%s</p>", ctx.Value(key{}))
			return err
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), key{}, "hello"))
		w := httptest.NewRecorder()

		require.NoError(t, response.Templ(component)(w, req))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "<p>hello</p>", w.Body.String())
	})

	t.Run("wraps render errors", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		component := templ.ComponentFunc(func(context.Context, io.Writer) error { return boom })

		err := response.TemplWithStatus(component, http.StatusUnprocessableEntity)(
			httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		assert.ErrorIs(t, err, boom)
	})

	t.Run("nil component yields nil response", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, response.Templ(nil))
	})
}

type coded struct{ status int }

func (c coded) Error() string   { return "coded" }
func (c coded) StatusCode() int { return c.status }

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"http error kept", response.ErrNotFound.WithMessage("Item not found"), http.StatusNotFound, "not_found"},
		{"wrapped http error kept", fmt.Errorf("load: %w", response.ErrConflict), http.StatusConflict, "conflict"},
		{"status code interface", coded{http.StatusBadGateway}, http.StatusBadGateway, "bad_gateway"},
		{"unknown status", coded{http.StatusTeapot}, http.StatusTeapot, "error"},
		{"plain error", errors.New("db down"), http.StatusInternalServerError, "internal_server_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := response.AsHTTPError(tt.err)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.code, got.Code)
		})
	}

	t.Run("with error does not mutate shared details", func(t *testing.T) {
		t.Parallel()

		_ = response.ErrBadGateway.WithError(errors.New("x"))
		assert.Nil(t, response.ErrBadGateway.Details)
	})
}

func TestStringWithStatus(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	require.NoError(t, response.StringWithStatus("READY", 0)(w, httptest.NewRequest(http.MethodGet, "/", nil)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "READY", w.Body.String())
}
