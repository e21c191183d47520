package web_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/itemdesk/app/web"
	"github.com/dmitrymomot/itemdesk/core/server"
	"github.com/dmitrymomot/itemdesk/core/session"
	"github.com/dmitrymomot/itemdesk/core/sessionstore"
	"github.com/dmitrymomot/itemdesk/integration/rpc"
)

const (
	loginReply = `{"user":{"id":"u1","name":"Ann","email":"ann@example.com"},"tokens":{"accessToken":"access-1","refreshToken":"refresh-1","expiresAt":"1893456000"}}`
	listReply  = `{"items":[{"id":"i1","name":"Desk lamp","description":"brass","status":"ITEM_STATUS_ACTIVE","userId":"u1","createdAt":"1714557600","updatedAt":"1714557600"}],"totalCount":1}`
	itemReply  = `{"item":{"id":"i1","name":"Desk lamp","description":"brass","status":"ITEM_STATUS_ACTIVE","userId":"u1"}}`
)

// remote fakes both services. Paths missing from replies answer not_found.
type remote struct {
	mu      sync.Mutex
	replies map[string]string
	calls   []string
	bodies  map[string]map[string]any
	authz   map[string]string

	// before runs ahead of each reply, outside the lock.
	before func(path string)
}

func newRemote(replies map[string]string) *remote {
	return &remote{replies: replies, bodies: map[string]map[string]any{}, authz: map[string]string{}}
}

func (s *remote) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if s.before != nil {
		s.before(r.URL.Path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, r.URL.Path)
	s.authz[r.URL.Path] = r.Header.Get("Authorization")
	body := map[string]any{}
	data, _ := io.ReadAll(r.Body)
	_ = json.Unmarshal(data, &body)
	s.bodies[r.URL.Path] = body

	w.Header().Set("Content-Type", "application/json")
	reply, ok := s.replies[r.URL.Path]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"not_found","message":"not found"}`))
		return
	}
	if strings.HasPrefix(reply, `{"code"`) {
		w.WriteHeader(http.StatusUnauthorized)
	}
	_, _ = w.Write([]byte(reply))
}

func (s *remote) called(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.calls {
		if c == path {
			return true
		}
	}
	return false
}

func (s *remote) body(path string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies[path]
}

func (s *remote) authorization(path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authz[path]
}

type harness struct {
	app     *web.App
	storage session.Storage
	client  *http.Client
	url     string
}

func newHarness(t *testing.T, svc *remote) *harness {
	t.Helper()
	return newHarnessWithStorage(t, svc, sessionstore.NewMemory())
}

func newHarnessWithStorage(t *testing.T, svc *remote, storage session.Storage) *harness {
	t.Helper()

	rs := httptest.NewServer(svc)
	t.Cleanup(rs.Close)

	app, err := web.New(context.Background(),
		web.WithConfig(web.Config{
			Server: server.Config{Addr: "127.0.0.1:0"},
			RPC:    rpc.Config{BaseURL: rs.URL, Timeout: 5 * time.Second},
		}),
		web.WithLogger(slog.New(slog.DiscardHandler)),
		web.WithStorage(storage),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &harness{app: app, storage: storage, client: &http.Client{Jar: jar}, url: srv.URL}
}

func (h *harness) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := h.client.Get(h.url + path)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (h *harness) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := h.client.PostForm(h.url+path, form)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

// failingStorage accepts reads but rejects every write.
type failingStorage struct {
	*sessionstore.Memory
}

func (failingStorage) Save(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func signIn(t *testing.T, h *harness) {
	t.Helper()
	resp, body := h.post(t, "/sign-in", url.Values{"email": {"Ann@Example.com "}, "password": {"secret1"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "/", resp.Request.URL.Path)
	require.Contains(t, body, "Welcome, Ann")
}

func TestGuard(t *testing.T) {
	t.Parallel()

	t.Run("signed out user is sent to sign in", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, newRemote(nil))

		for _, path := range []string{"/", "/items", "/items/i1/edit"} {
			resp, body := h.get(t, path)
			assert.Equal(t, "/sign-in", resp.Request.URL.Path, path)
			assert.Contains(t, body, `action="/sign-in"`, path)
		}
	})

	t.Run("signed in user never sees sign in or sign up", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, newRemote(map[string]string{"/auth.AuthService/Login": loginReply}))
		signIn(t, h)

		for _, path := range []string{"/sign-in", "/sign-up"} {
			resp, body := h.get(t, path)
			assert.Equal(t, "/", resp.Request.URL.Path, path)
			assert.Contains(t, body, "Welcome, Ann", path)
		}
	})

	t.Run("unguarded routes stay reachable", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, newRemote(nil))

		resp, body := h.get(t, "/health/live")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, body)

		resp, _ = h.get(t, "/health/ready")
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, body = h.get(t, "/metrics")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "itemdesk_session_authenticated")
	})
}

func TestSignIn(t *testing.T) {
	t.Parallel()

	t.Run("stores the session before redirecting home", func(t *testing.T) {
		t.Parallel()
		svc := newRemote(map[string]string{"/auth.AuthService/Login": loginReply})
		h := newHarness(t, svc)
		signIn(t, h)

		assert.Equal(t, "ann@example.com", svc.body("/auth.AuthService/Login")["email"])

		sess := h.app.Store().Session()
		assert.True(t, sess.IsAuthenticated)
		require.NotNil(t, sess.User)
		assert.Equal(t, "u1", sess.User.ID)
		assert.Equal(t, "access-1", sess.Token())

		data, err := h.storage.Load(context.Background(), session.DefaultKey)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"accessToken":"access-1"`)
		assert.Contains(t, string(data), `"isAuthenticated":true`)
	})

	t.Run("invalid form is rendered back without calling the service", func(t *testing.T) {
		t.Parallel()
		svc := newRemote(map[string]string{"/auth.AuthService/Login": loginReply})
		h := newHarness(t, svc)

		resp, body := h.post(t, "/sign-in", url.Values{"email": {"not-an-email"}})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, body, "Invalid email address")
		assert.Contains(t, body, `value="not-an-email"`)
		assert.False(t, svc.called("/auth.AuthService/Login"))
		assert.False(t, h.app.Store().Session().IsAuthenticated)
	})

	t.Run("rejected credentials show a toast and keep the session", func(t *testing.T) {
		t.Parallel()
		svc := newRemote(map[string]string{
			"/auth.AuthService/Login": `{"code":"unauthenticated","message":"invalid email or password"}`,
		})
		h := newHarness(t, svc)

		resp, body := h.post(t, "/sign-in", url.Values{"email": {"ann@example.com"}, "password": {"wrong"}})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "/sign-in", resp.Request.URL.Path)
		assert.Contains(t, body, "invalid email or password")
		assert.NotContains(t, body, `value="wrong"`)
		assert.Equal(t, session.Session{}, h.app.Store().Session())
	})

	t.Run("login overtaken by logout is discarded", func(t *testing.T) {
		t.Parallel()
		svc := newRemote(map[string]string{
			"/auth.AuthService/Login":  loginReply,
			"/auth.AuthService/Logout": `{}`,
		})
		var h *harness
		svc.before = func(path string) {
			if path != "/auth.AuthService/Login" {
				return
			}
			// The user signs out in another tab while the login call is in flight.
			resp, err := h.client.PostForm(h.url+"/logout", nil)
			if assert.NoError(t, err) {
				resp.Body.Close()
				assert.Equal(t, "/sign-in", resp.Request.URL.Path)
			}
		}
		h = newHarness(t, svc)

		resp, body := h.post(t, "/sign-in", url.Values{"email": {"ann@example.com"}, "password": {"secret1"}})
		assert.Equal(t, "/sign-in", resp.Request.URL.Path)
		assert.Contains(t, body, "You were signed out while signing in.")
		assert.Equal(t, session.Session{}, h.app.Store().Session())

		data, err := h.storage.Load(context.Background(), session.DefaultKey)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"isAuthenticated":false`)

		resp, _ = h.get(t, "/")
		assert.Equal(t, "/sign-in", resp.Request.URL.Path)
	})

	t.Run("unsaved login still signs in and says so", func(t *testing.T) {
		t.Parallel()
		svc := newRemote(map[string]string{
			"/auth.AuthService/Login":        loginReply,
			"/auth.AuthService/RefreshToken": `{"tokens":{"accessToken":"access-2","refreshToken":"refresh-2"}}`,
		})
		h := newHarnessWithStorage(t, svc, failingStorage{sessionstore.NewMemory()})

		resp, body := h.post(t, "/sign-in", url.Values{"email": {"ann@example.com"}, "password": {"secret1"}})
		assert.Equal(t, "/", resp.Request.URL.Path)
		assert.Contains(t, body, "Signed in, but the session could not be saved.")
		assert.Contains(t, body, "Welcome, Ann")
		assert.True(t, h.app.Store().Session().IsAuthenticated)
		assert.Error(t, h.app.Store().LastPersistError())

		resp, _ = h.get(t, "/health/ready")
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		resp, body = h.post(t, "/session/refresh", nil)
		assert.Equal(t, "/", resp.Request.URL.Path)
		assert.Contains(t, body, "Session refreshed, but it could not be saved.")
		assert.NotContains(t, body, "Session refreshed.")
		assert.Equal(t, "access-2", h.app.Store().Session().Token())
	})
}

func TestSignUp(t *testing.T) {
	t.Parallel()

	t.Run("mismatched passwords fail validation", func(t *testing.T) {
		t.Parallel()
		svc := newRemote(map[string]string{"/auth.AuthService/Register": loginReply})
		h := newHarness(t, svc)

		resp, body := h.post(t, "/sign-up", url.Values{
			"name":             {"Ann"},
			"email":            {"ann@example.com"},
			"password":         {"secret1"},
			"confirm_password": {"secret2"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, body, "Passwords do not match")
		assert.False(t, svc.called("/auth.AuthService/Register"))
	})

	t.Run("short password fails validation", func(t *testing.T) {
		t.Parallel()
		svc := newRemote(map[string]string{"/auth.AuthService/Register": loginReply})
		h := newHarness(t, svc)

		resp, _ := h.post(t, "/sign-up", url.Values{
			"name":             {"Ann"},
			"email":            {"ann@example.com"},
			"password":         {"abc"},
			"confirm_password": {"abc"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.False(t, svc.called("/auth.AuthService/Register"))
	})

	t.Run("registers and signs in", func(t *testing.T) {
		t.Parallel()
		svc := newRemote(map[string]string{"/auth.AuthService/Register": loginReply})
		h := newHarness(t, svc)

		resp, body := h.post(t, "/sign-up", url.Values{
			"name":             {" Ann "},
			"email":            {"ann@example.com"},
			"password":         {"secret1"},
			"confirm_password": {"secret1"},
		})
		assert.Equal(t, "/", resp.Request.URL.Path)
		assert.Contains(t, body, "Welcome, Ann")
		assert.Equal(t, "Ann", svc.body("/auth.AuthService/Register")["name"])
		assert.True(t, h.app.Store().Session().IsAuthenticated)
	})
}

func TestItems(t *testing.T) {
	t.Parallel()

	replies := func() map[string]string {
		return map[string]string{
			"/auth.AuthService/Login":         loginReply,
			"/item.v1.ItemService/ListItems":  listReply,
			"/item.v1.ItemService/GetItem":    itemReply,
			"/item.v1.ItemService/CreateItem": itemReply,
			"/item.v1.ItemService/UpdateItem": itemReply,
			"/item.v1.ItemService/DeleteItem": `{}`,
		}
	}

	t.Run("lists items with the bearer token", func(t *testing.T) {
		t.Parallel()
		svc := newRemote(replies())
		h := newHarness(t, svc)
		signIn(t, h)

		resp, body := h.get(t, "/items?q=lamp")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Desk lamp")
		assert.Contains(t, body, "Items (1)")
		assert.Contains(t, body, "/items/i1/edit")
		assert.Equal(t, "Bearer access-1", svc.authorization("/item.v1.ItemService/ListItems"))

		filters, ok := svc.body("/item.v1.ItemService/ListItems")["filters"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "lamp", filters["name"])
	})

	t.Run("create redirects back to the list with a toast", func(t *testing.T) {
		t.Parallel()
		svc := newRemote(replies())
		h := newHarness(t, svc)
		signIn(t, h)

		resp, body := h.post(t, "/items", url.Values{"name": {"  Desk lamp "}, "description": {"brass"}})
		assert.Equal(t, "/items", resp.Request.URL.Path)
		assert.Contains(t, body, "Item created.")
		assert.Equal(t, "Desk lamp", svc.body("/item.v1.ItemService/CreateItem")["name"])

		_, body = h.get(t, "/items")
		assert.NotContains(t, body, "Item created.")
	})

	t.Run("create without a name is rendered back", func(t *testing.T) {
		t.Parallel()
		svc := newRemote(replies())
		h := newHarness(t, svc)
		signIn(t, h)

		resp, body := h.post(t, "/items", url.Values{"name": {" "}, "description": {"brass"}})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, body, "brass")
		assert.False(t, svc.called("/item.v1.ItemService/CreateItem"))
	})

	t.Run("edit and update", func(t *testing.T) {
		t.Parallel()
		svc := newRemote(replies())
		h := newHarness(t, svc)
		signIn(t, h)

		resp, body := h.get(t, "/items/i1/edit")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `value="Desk lamp"`)

		resp, body = h.post(t, "/items/i1", url.Values{"name": {"Floor lamp"}, "description": {""}})
		assert.Equal(t, "/items", resp.Request.URL.Path)
		assert.Contains(t, body, "Item updated.")
		sent := svc.body("/item.v1.ItemService/UpdateItem")
		assert.Equal(t, "i1", sent["id"])
		assert.Equal(t, "Floor lamp", sent["name"])
	})

	t.Run("status filter narrows the list", func(t *testing.T) {
		t.Parallel()
		svc := newRemote(replies())
		h := newHarness(t, svc)
		signIn(t, h)

		resp, body := h.get(t, "/items?status=Archived")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, `<option value="archived" selected>`)

		filters, ok := svc.body("/item.v1.ItemService/ListItems")["filters"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, []any{"ITEM_STATUS_ARCHIVED"}, filters["statuses"])

		resp, _ = h.get(t, "/items?status=lost")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("status change sends only the status", func(t *testing.T) {
		t.Parallel()
		svc := newRemote(replies())
		h := newHarness(t, svc)
		signIn(t, h)

		_, body := h.get(t, "/items")
		assert.Contains(t, body, `action="/items/i1/status"`)

		resp, body := h.post(t, "/items/i1/status", url.Values{"status": {"archived"}})
		assert.Equal(t, "/items", resp.Request.URL.Path)
		assert.Contains(t, body, "Item marked archived.")
		assert.Equal(t, map[string]any{"id": "i1", "status": "ITEM_STATUS_ARCHIVED"}, svc.body("/item.v1.ItemService/UpdateItem"))
	})

	t.Run("unknown status is not sent", func(t *testing.T) {
		t.Parallel()
		svc := newRemote(replies())
		h := newHarness(t, svc)
		signIn(t, h)

		resp, body := h.post(t, "/items/i1/status", url.Values{"status": {"deleted"}})
		assert.Equal(t, "/items", resp.Request.URL.Path)
		assert.Contains(t, body, "Choose a valid status.")
		assert.False(t, svc.called("/item.v1.ItemService/UpdateItem"))
	})

	t.Run("delete asks for confirmation first", func(t *testing.T) {
		t.Parallel()
		svc := newRemote(replies())
		h := newHarness(t, svc)
		signIn(t, h)

		_, body := h.get(t, "/items/i1/delete")
		assert.Contains(t, body, `action="/items/i1/delete"`)
		assert.False(t, svc.called("/item.v1.ItemService/DeleteItem"))

		resp, body := h.post(t, "/items/i1/delete", nil)
		assert.Equal(t, "/items", resp.Request.URL.Path)
		assert.Contains(t, body, "Item deleted.")
		assert.Equal(t, "i1", svc.body("/item.v1.ItemService/DeleteItem")["id"])
	})

	t.Run("missing item is a 404 page", func(t *testing.T) {
		t.Parallel()
		svc := newRemote(map[string]string{"/auth.AuthService/Login": loginReply})
		h := newHarness(t, svc)
		signIn(t, h)

		resp, body := h.get(t, "/items/nope/edit")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Contains(t, body, "Item not found.")
	})

	t.Run("failed mutation keeps the list and shows the error", func(t *testing.T) {
		t.Parallel()
		r := replies()
		r["/item.v1.ItemService/CreateItem"] = `{"code":"unauthenticated","message":"token rejected"}`
		svc := newRemote(r)
		h := newHarness(t, svc)
		signIn(t, h)

		resp, body := h.post(t, "/items", url.Values{"name": {"Desk lamp"}})
		assert.Equal(t, "/items", resp.Request.URL.Path)
		assert.Contains(t, body, "token rejected")
		assert.Contains(t, body, "Desk lamp")
		assert.True(t, h.app.Store().Session().IsAuthenticated)
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	svc := newRemote(map[string]string{
		"/auth.AuthService/Login":  loginReply,
		"/auth.AuthService/Logout": `{}`,
	})
	h := newHarness(t, svc)
	signIn(t, h)

	resp, body := h.post(t, "/logout", nil)
	assert.Equal(t, "/sign-in", resp.Request.URL.Path)
	assert.Contains(t, body, "You have been signed out.")
	assert.Equal(t, "Bearer access-1", svc.authorization("/auth.AuthService/Logout"))

	assert.Equal(t, session.Session{}, h.app.Store().Session())
	data, err := h.storage.Load(context.Background(), session.DefaultKey)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"isAuthenticated":false`)

	resp, _ = h.get(t, "/items")
	assert.Equal(t, "/sign-in", resp.Request.URL.Path)
}

func TestRefreshSession(t *testing.T) {
	t.Parallel()

	svc := newRemote(map[string]string{
		"/auth.AuthService/Login":        loginReply,
		"/auth.AuthService/RefreshToken": `{"tokens":{"accessToken":"access-2","refreshToken":"refresh-2"}}`,
	})
	h := newHarness(t, svc)
	signIn(t, h)

	resp, body := h.post(t, "/session/refresh", nil)
	assert.Equal(t, "/", resp.Request.URL.Path)
	assert.Contains(t, body, "Session refreshed.")
	assert.Equal(t, "refresh-1", svc.body("/auth.AuthService/RefreshToken")["refreshToken"])

	sess := h.app.Store().Session()
	assert.True(t, sess.IsAuthenticated)
	assert.Equal(t, "access-2", sess.Token())
	require.NotNil(t, sess.User)
	assert.Equal(t, "Ann", sess.User.Name)
}

func TestCrossSiteFormIsRejected(t *testing.T) {
	t.Parallel()

	svc := newRemote(map[string]string{"/auth.AuthService/Login": loginReply})
	h := newHarness(t, svc)

	req, err := http.NewRequest(http.MethodPost, h.url+"/sign-in",
		strings.NewReader(url.Values{"email": {"ann@example.com"}, "password": {"secret1"}}.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "https://evil.example")

	resp, err := h.client.Do(req)
	require.NoError(t, err)
	_ = readBody(t, resp)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, svc.called("/auth.AuthService/Login"))
}

func TestRoutes(t *testing.T) {
	t.Parallel()

	h := newHarness(t, newRemote(nil))

	var got []string
	for _, r := range h.app.Routes() {
		got = append(got, r.Method+" "+r.Pattern)
	}
	for _, want := range []string{
		"GET /", "GET /items", "POST /items", "GET /items/{id}/edit", "POST /items/{id}",
		"POST /items/{id}/status", "POST /items/{id}/delete", "GET /sign-in", "POST /sign-up", "POST /logout",
		"POST /session/refresh", "GET /metrics",
	} {
		assert.Contains(t, got, want)
	}
}
