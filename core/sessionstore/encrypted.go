package sessionstore

import (
	"context"
	"errors"

	"github.com/dmitrymomot/itemdesk/core/session"
	"github.com/dmitrymomot/itemdesk/pkg/secretbox"
)

const encryptedPurpose = "itemdesk/session-store"

// Encrypted seals records before handing them to the wrapped backend, so
// tokens are never stored in clear text.
type Encrypted struct {
	next session.Storage
	box  *secretbox.Box
}

// NewEncrypted wraps next. The first secret seals; all secrets open.
func NewEncrypted(next session.Storage, secrets []string) (*Encrypted, error) {
	box, err := secretbox.New(secrets, encryptedPurpose)
	if err != nil {
		return nil, err
	}
	return &Encrypted{next: next, box: box}, nil
}

func (e *Encrypted) Load(ctx context.Context, key string) ([]byte, error) {
	sealed, err := e.next.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	data, err := e.box.Open(sealed)
	if err != nil {
		// An unreadable record is treated like any other corrupt record.
		return nil, errors.Join(session.ErrCorruptRecord, err)
	}
	return data, nil
}

func (e *Encrypted) Save(ctx context.Context, key string, data []byte) error {
	sealed, err := e.box.Seal(data)
	if err != nil {
		return err
	}
	return e.next.Save(ctx, key, sealed)
}

func (e *Encrypted) Delete(ctx context.Context, key string) error {
	return e.next.Delete(ctx, key)
}

// Ping forwards to the wrapped backend when it supports it.
func (e *Encrypted) Ping(ctx context.Context) error {
	if p, ok := e.next.(session.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
