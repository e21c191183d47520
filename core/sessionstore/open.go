package sessionstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"

	"github.com/dmitrymomot/itemdesk/core/session"
)

var (
	ErrInvalidKey     = errors.New("invalid session record key")
	ErrUnknownBackend = errors.New("unknown session backend")
	ErrRedisRequired  = errors.New("redis backend requires a redis client")
)

// Open builds the backend named by cfg.Backend. fsys is used by the file
// backend and client by the redis one; either may be nil when unused. When
// cfg.Secrets is set the backend is wrapped in Encrypted.
func Open(cfg session.Config, fsys afero.Fs, client redis.UniversalClient) (session.Storage, error) {
	var storage session.Storage

	switch strings.ToLower(cfg.Backend) {
	case "memory":
		storage = NewMemory()
	case "", "file":
		if fsys == nil {
			fsys = afero.NewOsFs()
		}
		storage = NewFile(fsys, cfg.Dir)
	case "redis":
		if client == nil {
			return nil, ErrRedisRequired
		}
		storage = NewRedis(client, cfg.RedisPrefix)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	if secrets := splitSecrets(cfg.Secrets); len(secrets) > 0 {
		return NewEncrypted(storage, secrets)
	}
	return storage, nil
}

func splitSecrets(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
