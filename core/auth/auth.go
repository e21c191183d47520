package auth

import (
	"context"
	"errors"

	"github.com/dmitrymomot/itemdesk/core/session"
)

// ErrNoProvider is returned when the facade is requested outside of a
// provisioning scope. It is a wiring error, never an auth failure.
var ErrNoProvider = errors.New("auth: no facade in context; is the AuthProvider middleware installed?")

// Facade is the read/write view of the auth store handed to handlers.
// Reads reflect the latest committed state; mutations delegate to the store
// synchronously and do no validation of their own.
type Facade struct {
	store *session.Store
}

// NewFacade wraps store.
func NewFacade(store *session.Store) *Facade {
	return &Facade{store: store}
}

// Snapshot returns a consistent copy of the whole session.
func (f *Facade) Snapshot() session.Session {
	return f.store.Session()
}

func (f *Facade) User() *session.User {
	return f.store.Session().User
}

func (f *Facade) AccessToken() string {
	return f.store.Session().Token()
}

func (f *Facade) RefreshToken() string {
	if t := f.store.Session().RefreshToken; t != nil {
		return *t
	}
	return ""
}

func (f *Facade) IsAuthenticated() bool {
	return f.store.Session().IsAuthenticated
}

// Login stores the credentials returned by a successful sign-in or sign-up.
func (f *Facade) Login(ctx context.Context, user *session.User, accessToken, refreshToken string) error {
	return f.store.SetAuth(ctx, user, accessToken, refreshToken)
}

// Generation is captured before a login request and passed to LoginIfCurrent.
func (f *Facade) Generation() uint64 {
	return f.store.Generation()
}

// LoginIfCurrent applies a login only if no logout happened since gen.
func (f *Facade) LoginIfCurrent(ctx context.Context, gen uint64, user *session.User, accessToken, refreshToken string) (bool, error) {
	return f.store.SetAuthIfCurrent(ctx, gen, user, accessToken, refreshToken)
}

func (f *Facade) Logout(ctx context.Context) error {
	return f.store.ClearAuth(ctx)
}

func (f *Facade) UpdateAccessToken(ctx context.Context, token string) error {
	return f.store.UpdateAccessToken(ctx, token)
}

func (f *Facade) UpdateUser(ctx context.Context, user *session.User) error {
	return f.store.SetUser(ctx, user)
}

type facadeKey struct{}

// WithFacade opens the provisioning scope for f.
func WithFacade(ctx context.Context, f *Facade) context.Context {
	return context.WithValue(ctx, facadeKey{}, f)
}

type valueSetter interface {
	SetValue(key, val any)
}

// Provide opens the provisioning scope on a request context that stores
// values in place, such as handler.Context.
func Provide(c valueSetter, f *Facade) {
	c.SetValue(facadeKey{}, f)
}

// FromContext returns the facade of the enclosing scope or ErrNoProvider.
func FromContext(ctx context.Context) (*Facade, error) {
	if f, ok := ctx.Value(facadeKey{}).(*Facade); ok && f != nil {
		return f, nil
	}
	return nil, ErrNoProvider
}

// MustFromContext is FromContext that panics outside a provisioning scope.
func MustFromContext(ctx context.Context) *Facade {
	f, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return f
}
