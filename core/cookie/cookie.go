package cookie

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/itemdesk/pkg/secretbox"
)

const (
	// MaxCookieSize is the maximum size of a Set-Cookie header value.
	MaxCookieSize = 4096

	flashPrefix = "__flash_"
	purpose     = "itemdesk/cookie"
)

// Manager sets and reads cookies, optionally sealed with the configured secrets.
type Manager struct {
	box      *secretbox.Box
	defaults Options
	maxSize  int
}

// New creates a manager. At least one secret of secretbox.MinSecretLength
// characters is required; additional secrets are accepted for rotation.
func New(secrets []string, opts ...Option) (*Manager, error) {
	box, err := secretbox.New(secrets, purpose)
	switch {
	case errors.Is(err, secretbox.ErrNoSecret):
		return nil, ErrNoSecret
	case errors.Is(err, secretbox.ErrSecretTooShort):
		return nil, fmt.Errorf("%w: %w", ErrSecretTooShort, err)
	case err != nil:
		return nil, err
	}

	defaults := applyOptions(Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, opts)

	return &Manager{box: box, defaults: defaults, maxSize: MaxCookieSize}, nil
}

// Set writes a plain cookie.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	o := applyOptions(m.defaults, opts)
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     o.Path,
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: o.HttpOnly,
		SameSite: o.SameSite,
	}
	if size := len(c.String()); size > m.maxSize {
		return ErrCookieTooLarge{Name: name, Size: size, Max: m.maxSize}
	}
	http.SetCookie(w, c)
	return nil
}

// Get reads a plain cookie.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete expires a cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
		Secure:   m.defaults.Secure,
	})
}

// SetEncrypted writes a sealed cookie.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name, value string, opts ...Option) error {
	sealed, err := m.box.Seal([]byte(value))
	if err != nil {
		return err
	}
	return m.Set(w, name, base64.RawURLEncoding.EncodeToString(sealed), opts...)
}

// GetEncrypted reads and opens a sealed cookie.
func (m *Manager) GetEncrypted(r *http.Request, name string) (string, error) {
	raw, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	sealed, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return "", ErrInvalidFormat
	}
	plain, err := m.box.Open(sealed)
	if err != nil {
		return "", ErrDecryptionFailed
	}
	return string(plain), nil
}

// SetFlash stores a one-time value that survives exactly one redirect.
func (m *Manager) SetFlash(w http.ResponseWriter, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal flash: %w", err)
	}
	return m.SetEncrypted(w, flashPrefix+key, string(data))
}

// GetFlash reads a flash value into dest and deletes it. A flash that fails
// to open is deleted as well.
func (m *Manager) GetFlash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	name := flashPrefix + key

	data, err := m.GetEncrypted(r, name)
	if err != nil {
		if !errors.Is(err, ErrCookieNotFound) {
			m.Delete(w, name)
		}
		return err
	}
	m.Delete(w, name)

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("unmarshal flash: %w", err)
	}
	return nil
}
