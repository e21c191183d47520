package web

import (
	"github.com/dmitrymomot/itemdesk/core/cookie"
	"github.com/dmitrymomot/itemdesk/core/server"
	"github.com/dmitrymomot/itemdesk/core/session"
	"github.com/dmitrymomot/itemdesk/integration/database/redis"
	"github.com/dmitrymomot/itemdesk/integration/rpc"
)

type Config struct {
	Server  server.Config
	Cookie  cookie.Config
	Session session.Config
	Redis   redis.Config
	RPC     rpc.Config

	AppName   string `env:"APP_NAME" envDefault:"itemdesk"`
	Env       string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"` // text or json
	LogFile   string `env:"LOG_FILE"`                     // rotated file output instead of stdout
}

// IsDevelopment reports whether the app runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}
