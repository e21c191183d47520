package rpc

import "time"

// Config is the environment configuration of the remote services.
type Config struct {
	BaseURL       string        `env:"RPC_BASE_URL" envDefault:"http://localhost:8080"`
	Timeout       time.Duration `env:"RPC_TIMEOUT" envDefault:"15s"`
	RetryAttempts uint          `env:"RPC_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"RPC_RETRY_INTERVAL" envDefault:"200ms"`
}
