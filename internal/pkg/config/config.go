package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Upstream UpstreamConfig
	Session  SessionConfig
	Redis    RedisConfig
	Mongo    MongoConfig
}

type UpstreamConfig struct {
	BaseURL string        `env:"UPSTREAM_BASE_URL, default=https://localhost:5001/api/v1"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT,  default=30s"`
}

type SessionConfig struct {
	CookieName   string        `env:"SESSION_COOKIE, default=realestate_auth_token"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE, default=false"`
	TTL          time.Duration `env:"SESSION_TTL,    default=24h"`
}

type RedisConfig struct {
	Addr    string        `env:"REDIS_ADDR,    default=localhost:6379"`
	DB      int           `env:"REDIS_DB,      default=0"`
	Timeout time.Duration `env:"REDIS_TIMEOUT, default=5s"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database string        `env:"MONGO_DB,      default=realestate_admin"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
