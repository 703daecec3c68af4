package config

import (
	"github.com/jessevdk/go-flags"
)

// Config holds the service options, settable as flags or environment
// variables.
type Config struct {
	HTTPAddr   string `long:"http-addr" env:"HTTP_ADDR" default:":8080" description:"dashboard listen address"`
	APIBaseURL string `long:"api-base-url" env:"API_BASE_URL" default:"http://localhost:3000" description:"remote hotel API base URL"`

	// RedisAddr enables the shared invalidation bus and session persistence.
	// Left empty, invalidations stay in process and sessions in memory.
	RedisAddr string `long:"redis-addr" env:"REDIS_ADDR" description:"redis address"`

	JaegerEndpoint string `long:"jaeger-endpoint" env:"JAEGER_ENDPOINT" description:"jaeger collector endpoint"`
	SessionToken   string `long:"session-token" env:"SESSION_TOKEN" description:"fallback bearer token for the remote API"`
	LogLevel       string `long:"log-level" env:"LOG_LEVEL" default:"info" description:"logrus level"`

	// StubAPIAddr starts a seeded in-process copy of the remote API, for
	// local development without the real backend.
	StubAPIAddr string `long:"stub-api-addr" env:"STUB_API_ADDR" description:"serve a seeded stub of the remote API on this address"`
}

func Parse() (Config, error) {
	var cfg Config
	_, err := flags.Parse(&cfg)
	return cfg, err
}
