package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/itemdesk/core/session"
)

func TestDecode_BrowserRecord(t *testing.T) {
	t.Parallel()

	// A record as written by the web client's persisted store.
	raw := `{"state":{"accessToken":"eyJ.a","refreshToken":"eyJ.r","isAuthenticated":true,` +
		`"user":{"id":"u1","name":"Ann","email":"ann@example.com"}},"version":0}`

	got, err := session.Decode([]byte(raw))
	require.NoError(t, err)
	assert.True(t, got.IsAuthenticated)
	assert.Equal(t, "eyJ.a", got.Token())
	assert.Equal(t, "Ann", got.User.Name)

	encoded, err := session.Encode(got)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(encoded))
}

func TestDecode_Corrupt(t *testing.T) {
	t.Parallel()

	_, err := session.Decode([]byte("null-ish"))
	assert.ErrorIs(t, err, session.ErrCorruptRecord)
}
