package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/afero"

	"github.com/dmitrymomot/itemdesk/core/auth"
	"github.com/dmitrymomot/itemdesk/core/config"
	"github.com/dmitrymomot/itemdesk/core/cookie"
	"github.com/dmitrymomot/itemdesk/core/health"
	"github.com/dmitrymomot/itemdesk/core/logger"
	"github.com/dmitrymomot/itemdesk/core/metrics"
	"github.com/dmitrymomot/itemdesk/core/router"
	"github.com/dmitrymomot/itemdesk/core/server"
	"github.com/dmitrymomot/itemdesk/core/session"
	"github.com/dmitrymomot/itemdesk/core/sessionstore"
	"github.com/dmitrymomot/itemdesk/integration/authservice"
	"github.com/dmitrymomot/itemdesk/integration/database/redis"
	"github.com/dmitrymomot/itemdesk/integration/itemservice"
	"github.com/dmitrymomot/itemdesk/integration/rpc"
	"github.com/dmitrymomot/itemdesk/middleware"
)

// App is the local web client: one persisted session, the remote service
// clients and the HTTP surface.
type App struct {
	config  Config
	logger  *slog.Logger
	fs      afero.Fs
	storage session.Storage
	redis   goredis.UniversalClient
	closers []io.Closer

	store   *session.Store
	facade  *auth.Facade
	cookies *cookie.Manager
	metrics *metrics.Metrics
	rpc     *rpc.Client
	items   *itemservice.Client
	auth    *authservice.Client
	checks  []health.Check

	httpClient *http.Client
	router     router.Router[*Context]
	server     *server.Server
}

type AppOption func(*App) error

// New builds the app. The session store is hydrated from durable storage
// before the router is built, so no route guard can observe an
// uninitialized session.
func New(ctx context.Context, opts ...AppOption) (*App, error) {
	app := &App{}
	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.config.AppName == "" {
		if err := config.Load(&app.config); err != nil {
			return nil, err
		}
	}
	if app.logger == nil {
		l, err := newLogger(app.config)
		if err != nil {
			return nil, err
		}
		app.logger = l
	}
	if app.metrics == nil {
		app.metrics = metrics.New()
	}

	if err := app.openSession(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}

	if app.cookies == nil {
		cm, err := app.newCookieManager()
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		app.cookies = cm
	}

	if app.rpc == nil {
		c, err := rpc.New(app.config.RPC,
			rpc.WithHTTPClient(app.httpClient),
			rpc.WithObserver(app.metrics),
			rpc.WithLogger(app.logger),
		)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		app.rpc = c
	}
	app.items = itemservice.New(app.rpc)
	app.auth = authservice.New(app.rpc)

	if app.server == nil {
		s, err := server.NewFromConfig(app.config.Server, server.WithLogger(app.logger))
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		app.server = s
	}

	app.router = app.routes()
	return app, nil
}

func (a *App) openSession(ctx context.Context) error {
	cfg := a.config.Session

	if a.storage == nil {
		if strings.EqualFold(cfg.Backend, "redis") && a.redis == nil {
			client, err := redis.Connect(ctx, a.config.Redis)
			if err != nil {
				return err
			}
			a.redis = client
			a.closers = append(a.closers, client)
		}
		storage, err := sessionstore.Open(cfg, a.fs, a.redis)
		if err != nil {
			return err
		}
		a.storage = storage
	}

	store, err := session.New(ctx, a.storage,
		session.WithKey(cfg.Key),
		session.WithLogger(a.logger.With(logger.Component("session"))),
		session.WithObserver(a.metrics),
		session.WithPersistTimeout(cfg.PersistTimeout),
	)
	if err != nil {
		return err
	}
	a.store = store
	a.facade = auth.NewFacade(store)

	a.checks = append(a.checks, health.Check{Name: "session", Fn: store.Healthcheck})
	if a.redis != nil {
		a.checks = append(a.checks, health.Check{Name: "redis", Fn: redis.Healthcheck(a.redis)})
	}
	return nil
}

// newCookieManager falls back to a per-process secret when none is
// configured. Cookies only carry flash messages, which never outlive a
// redirect, so losing them on restart is harmless.
func (a *App) newCookieManager() (*cookie.Manager, error) {
	cfg := a.config.Cookie
	if strings.TrimSpace(cfg.Secrets) == "" {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, err
		}
		cfg.Secrets = hex.EncodeToString(secret)
		a.logger.Debug("using ephemeral cookie secret", logger.Component("web"))
	}
	return cookie.NewFromConfig(cfg)
}

func newLogger(cfg Config) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, errors.Join(ErrInvalidLogLevel, err)
	}

	opts := []logger.Option{
		logger.WithLevel(level),
		logger.WithAttr(slog.String("service", cfg.AppName)),
		logger.WithContextExtractors(middleware.RequestIDExtractor),
	}
	if strings.EqualFold(cfg.LogFormat, "json") {
		opts = append(opts, logger.WithJSONFormatter())
	}
	if cfg.LogFile != "" {
		opts = append(opts, logger.WithFileOutput(cfg.LogFile, 10, 3))
	} else {
		opts = append(opts, logger.WithOutput(os.Stderr))
	}
	return logger.New(opts...), nil
}

// Handler returns the HTTP handler of the app.
func (a *App) Handler() http.Handler {
	return a.router
}

// Routes lists the registered routes.
func (a *App) Routes() []router.Route {
	return a.router.Routes()
}

// Store exposes the session store, for the CLI session commands.
func (a *App) Store() *session.Store {
	return a.store
}

func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run serves until ctx is canceled. It is shaped for errgroup.Go.
func (a *App) Run(ctx context.Context) func() error {
	return a.server.Run(ctx, a.Handler())
}

// Close releases the connections the app opened itself.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

// WithConfig skips loading configuration from the environment.
func WithConfig(cfg Config) AppOption {
	return func(app *App) error {
		if cfg.AppName == "" {
			cfg.AppName = "itemdesk"
		}
		app.config = cfg
		return nil
	}
}

func WithLogger(logger *slog.Logger) AppOption {
	return func(app *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = logger
		return nil
	}
}

// WithStorage replaces the configured session backend.
func WithStorage(storage session.Storage) AppOption {
	return func(app *App) error {
		if storage == nil {
			return errors.New("session storage cannot be nil")
		}
		app.storage = storage
		return nil
	}
}

// WithFilesystem sets the filesystem of the file session backend.
func WithFilesystem(fs afero.Fs) AppOption {
	return func(app *App) error {
		if fs == nil {
			return errors.New("filesystem cannot be nil")
		}
		app.fs = fs
		return nil
	}
}

// WithRedis supplies a redis client for the redis session backend. The
// caller keeps ownership of it.
func WithRedis(client goredis.UniversalClient) AppOption {
	return func(app *App) error {
		if client == nil {
			return errors.New("redis client cannot be nil")
		}
		app.redis = client
		return nil
	}
}

func WithHTTPClient(client *http.Client) AppOption {
	return func(app *App) error {
		if client == nil {
			return errors.New("http client cannot be nil")
		}
		app.httpClient = client
		return nil
	}
}

func WithMetrics(m *metrics.Metrics) AppOption {
	return func(app *App) error {
		if m == nil {
			return errors.New("metrics cannot be nil")
		}
		app.metrics = m
		return nil
	}
}

func WithServer(server *server.Server) AppOption {
	return func(app *App) error {
		if server == nil {
			return errors.New("server cannot be nil")
		}
		app.server = server
		return nil
	}
}
