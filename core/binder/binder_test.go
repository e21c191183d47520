package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/itemdesk/core/binder"
)

type itemForm struct {
	ID          string   `path:"id" form:"-"`
	Name        string   `form:"name"`
	Description string   `form:"description"`
	Statuses    []string `query:"status" form:"-"`
	Page        int      `query:"page" form:"-"`
	Remember    bool     `form:"remember"`
	Internal    string   `form:"-"`
}

func formRequest(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/items?status=draft,active&status=archived&page=2", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()

		r := formRequest(url.Values{
			"name":        {"Widget"},
			"description": {"line one\r\nline two\x00"},
			"remember":    {"on"},
			"Internal":    {"ignored"},
		})

		var req itemForm
		require.NoError(t, binder.Form()(r, &req))
		assert.Equal(t, "Widget", req.Name)
		assert.Equal(t, "line one\nline two", req.Description)
		assert.True(t, req.Remember)
		assert.Empty(t, req.Internal)
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()

		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		require.NoError(t, mw.WriteField("name", "Widget"))
		require.NoError(t, mw.Close())

		r := httptest.NewRequest(http.MethodPost, "/items", &body)
		r.Header.Set("Content-Type", mw.FormDataContentType())

		var req itemForm
		require.NoError(t, binder.Form()(r, &req))
		assert.Equal(t, "Widget", req.Name)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/items", nil)
		err := binder.Form()(r, &itemForm{})
		assert.ErrorIs(t, err, binder.ErrMissingContentType)
	})

	t.Run("unsupported media type", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader("{}"))
		r.Header.Set("Content-Type", "application/json")
		err := binder.Form()(r, &itemForm{})
		assert.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})

	t.Run("non pointer target", func(t *testing.T) {
		t.Parallel()

		err := binder.Form()(formRequest(url.Values{}), itemForm{})
		assert.ErrorIs(t, err, binder.ErrFailedToParseForm)
	})
}

func TestQueryAndPath(t *testing.T) {
	t.Parallel()

	r := formRequest(url.Values{"name": {"Widget"}})
	param := func(_ *http.Request, name string) string {
		if name == "id" {
			return "item-1"
		}
		return ""
	}

	var req itemForm
	require.NoError(t, binder.All(binder.Path(param), binder.Query(), binder.Form())(r, &req))

	assert.Equal(t, "item-1", req.ID)
	assert.Equal(t, []string{"draft", "active", "archived"}, req.Statuses)
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, "Widget", req.Name)
}

func TestQuery_InvalidNumber(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/items?page=two", nil)
	var req itemForm
	err := binder.Query()(r, &req)
	assert.ErrorIs(t, err, binder.ErrFailedToParseQuery)
}
