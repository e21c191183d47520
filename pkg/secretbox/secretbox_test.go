package secretbox_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/itemdesk/pkg/secretbox"
)

var (
	secretA = strings.Repeat("a", 32)
	secretB = strings.Repeat("b", 32)
)

func TestBox(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		box, err := secretbox.New([]string{secretA}, "test")
		require.NoError(t, err)

		sealed, err := box.Seal([]byte("token"))
		require.NoError(t, err)
		assert.NotContains(t, string(sealed), "token")

		plain, err := box.Open(sealed)
		require.NoError(t, err)
		assert.Equal(t, "token", string(plain))
	})

	t.Run("rotation opens old payloads", func(t *testing.T) {
		t.Parallel()

		old, err := secretbox.New([]string{secretA}, "test")
		require.NoError(t, err)
		sealed, err := old.Seal([]byte("v"))
		require.NoError(t, err)

		rotated, err := secretbox.New([]string{secretB, secretA}, "test")
		require.NoError(t, err)
		plain, err := rotated.Open(sealed)
		require.NoError(t, err)
		assert.Equal(t, "v", string(plain))
	})

	t.Run("purpose separates keys", func(t *testing.T) {
		t.Parallel()

		cookies, err := secretbox.New([]string{secretA}, "cookie")
		require.NoError(t, err)
		store, err := secretbox.New([]string{secretA}, "store")
		require.NoError(t, err)

		sealed, err := cookies.Seal([]byte("v"))
		require.NoError(t, err)
		_, err = store.Open(sealed)
		assert.ErrorIs(t, err, secretbox.ErrOpenFailed)
	})

	t.Run("tampered payload", func(t *testing.T) {
		t.Parallel()

		box, err := secretbox.New([]string{secretA}, "test")
		require.NoError(t, err)
		sealed, err := box.Seal([]byte("value"))
		require.NoError(t, err)

		sealed[len(sealed)-1] ^= 0xff
		_, err = box.Open(sealed)
		assert.ErrorIs(t, err, secretbox.ErrOpenFailed)

		_, err = box.Open([]byte("short"))
		assert.ErrorIs(t, err, secretbox.ErrMalformed)
	})

	t.Run("secret validation", func(t *testing.T) {
		t.Parallel()

		_, err := secretbox.New(nil, "test")
		assert.ErrorIs(t, err, secretbox.ErrNoSecret)

		_, err = secretbox.New([]string{"", ""}, "test")
		assert.ErrorIs(t, err, secretbox.ErrNoSecret)

		_, err = secretbox.New([]string{"short"}, "test")
		assert.ErrorIs(t, err, secretbox.ErrSecretTooShort)
	})
}
