// Package secretbox seals small payloads with XChaCha20-Poly1305 under keys
// derived from operator secrets with HKDF-SHA256. Multiple secrets enable
// rotation: the first seals, all of them are tried on open.
package secretbox

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// MinSecretLength is the shortest accepted secret.
const MinSecretLength = 32

var (
	ErrNoSecret       = errors.New("secretbox: no secret provided")
	ErrSecretTooShort = errors.New("secretbox: secret too short")
	ErrMalformed      = errors.New("secretbox: malformed ciphertext")
	ErrOpenFailed     = errors.New("secretbox: message authentication failed")
)

// Box seals and opens payloads.
type Box struct {
	aeads []cipher.AEAD
}

// New derives one key per secret. purpose separates keys used for different
// data so a cookie can never be opened as a stored session.
func New(secrets []string, purpose string) (*Box, error) {
	var aeads []cipher.AEAD
	for i, secret := range secrets {
		if secret == "" {
			continue
		}
		if len(secret) < MinSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d",
				ErrSecretTooShort, i, len(secret), MinSecretLength)
		}

		key := make([]byte, chacha20poly1305.KeySize)
		kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(purpose))
		if _, err := io.ReadFull(kdf, key); err != nil {
			return nil, fmt.Errorf("secretbox: derive key: %w", err)
		}

		aead, err := chacha20poly1305.NewX(key)
		if err != nil {
			return nil, fmt.Errorf("secretbox: init cipher: %w", err)
		}
		aeads = append(aeads, aead)
	}
	if len(aeads) == 0 {
		return nil, ErrNoSecret
	}
	return &Box{aeads: aeads}, nil
}

// Seal encrypts plaintext with the primary key. The nonce is prepended.
func (b *Box) Seal(plaintext []byte) ([]byte, error) {
	aead := b.aeads[0]
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("secretbox: nonce: %w", err)
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a payload produced by Seal with any configured key.
func (b *Box) Open(sealed []byte) ([]byte, error) {
	for _, aead := range b.aeads {
		if len(sealed) < aead.NonceSize()+aead.Overhead() {
			return nil, ErrMalformed
		}
		nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
		if plaintext, err := aead.Open(nil, nonce, ciphertext, nil); err == nil {
			return plaintext, nil
		}
	}
	return nil, ErrOpenFailed
}
