// Package config loads environment configuration into tagged structs.
//
// Values come from the process environment, with a .env file in the working
// directory read once on first use. Parsing is done by caarlos0/env, so
// fields use `env` and `envDefault` tags:
//
//	type Config struct {
//		BaseURL string        `env:"RPC_BASE_URL" envDefault:"http://localhost:8080"`
//		Timeout time.Duration `env:"RPC_TIMEOUT" envDefault:"15s"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Nested structs without a prefix share the flat namespace, which is how the
// web client composes the server, cookie, session, redis and RPC sections
// into one Config.
//
// The first successful load of a type is cached; later loads of the same
// type copy the cached value and do not re-read the environment. MustLoad
// panics instead of returning an error and is meant for process startup.
package config
