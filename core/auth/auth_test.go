package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/itemdesk/core/auth"
	"github.com/dmitrymomot/itemdesk/core/session"
	"github.com/dmitrymomot/itemdesk/core/sessionstore"
)

func newFacade(t *testing.T) *auth.Facade {
	t.Helper()
	store, err := session.New(context.Background(), sessionstore.NewMemory())
	require.NoError(t, err)
	return auth.NewFacade(store)
}

func TestFacade(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFacade(t)

	assert.False(t, f.IsAuthenticated())
	assert.Nil(t, f.User())
	assert.Empty(t, f.AccessToken())
	assert.Empty(t, f.RefreshToken())

	user := &session.User{ID: "u1", Name: "Ann", Email: "ann@example.com"}
	require.NoError(t, f.Login(ctx, user, "a", "r"))
	assert.True(t, f.IsAuthenticated())
	assert.Equal(t, user, f.User())
	assert.Equal(t, "a", f.AccessToken())
	assert.Equal(t, "r", f.RefreshToken())

	require.NoError(t, f.UpdateAccessToken(ctx, "a2"))
	assert.Equal(t, "a2", f.AccessToken())

	require.NoError(t, f.UpdateUser(ctx, &session.User{ID: "u1", Name: "Annie"}))
	assert.Equal(t, "Annie", f.User().Name)

	gen := f.Generation()
	require.NoError(t, f.Logout(ctx))
	assert.False(t, f.IsAuthenticated())
	assert.Equal(t, session.Session{}, f.Snapshot())

	applied, err := f.LoginIfCurrent(ctx, gen, user, "late", "late")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.False(t, f.IsAuthenticated())
}

func TestFacadesShareStore(t *testing.T) {
	t.Parallel()

	store, err := session.New(context.Background(), sessionstore.NewMemory())
	require.NoError(t, err)

	a, b := auth.NewFacade(store), auth.NewFacade(store)
	require.NoError(t, a.Login(context.Background(), nil, "a", "r"))
	assert.True(t, b.IsAuthenticated())
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	_, err := auth.FromContext(context.Background())
	assert.ErrorIs(t, err, auth.ErrNoProvider)
	assert.PanicsWithError(t, auth.ErrNoProvider.Error(), func() {
		auth.MustFromContext(context.Background())
	})

	f := newFacade(t)
	ctx := auth.WithFacade(context.Background(), f)

	got, err := auth.FromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, f, got)
	assert.Same(t, f, auth.MustFromContext(ctx))
}
