package session

import (
	"io"
	"log/slog"
	"time"
)

// DefaultKey is the durable record key.
const DefaultKey = "auth-storage"

// Config is the environment configuration of the store and its backend.
type Config struct {
	Key            string        `env:"SESSION_KEY" envDefault:"auth-storage"`
	Backend        string        `env:"SESSION_BACKEND" envDefault:"file"` // memory, file or redis
	Dir            string        `env:"SESSION_DIR" envDefault:".itemdesk"`
	RedisPrefix    string        `env:"SESSION_REDIS_PREFIX" envDefault:"itemdesk:"`
	Secrets        string        `env:"SESSION_SECRETS"` // comma-separated; enables at-rest encryption
	PersistTimeout time.Duration `env:"SESSION_PERSIST_TIMEOUT" envDefault:"5s"`
}

type options struct {
	key      string
	logger   *slog.Logger
	observer Observer
	timeout  time.Duration
}

func defaultOptions() options {
	return options{
		key:      DefaultKey,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: noopObserver{},
		timeout:  5 * time.Second,
	}
}

// Option configures a Store.
type Option func(*options)

// WithKey overrides the durable record key.
func WithKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.key = key
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithPersistTimeout bounds each write-through.
func WithPersistTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}
