package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Database    DatabaseConfig
	Redis       RedisConfig
	Enforcement EnforcementConfig
}

type DatabaseConfig struct {
	URL      string `env:"DATABASE_URL, default=postgres://localhost:5432/enforcement"`
	MaxConns int32  `env:"DATABASE_MAX_CONNS, default=10"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// EnforcementConfig carries the tunables of the inspection core.
type EnforcementConfig struct {
	// GraceMinutes is the window the owner has to register a spot after a
	// pending record is opened.
	GraceMinutes int `env:"GRACE_MINUTES, default=15"`
	// AuditWorkers is the number of sharded audit-trail writers.
	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
