package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	JWTSecret       string        `env:"JWT_SECRET,       default=dev-secret-change-me"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	CacheDriver     string        `env:"CACHE_DRIVER,     default=redis"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Auth    AuthConfig
	Session SessionConfig
	Delays  DelayConfig
	Notify  NotifyConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type AuthConfig struct {
	Mode          string `env:"AUTH_MODE,       default=mock"`
	AvatarBaseURL string `env:"AVATAR_BASE_URL, default=https://api.dicebear.com/7.x/avataaars/svg"`
}

type SessionConfig struct {
	TTL          time.Duration `env:"SESSION_TTL,           default=720h"`
	CookieName   string        `env:"SESSION_COOKIE,        default=foodshare_session"`
	CookieSecure bool          `env:"SESSION_COOKIE_SECURE, default=false"`
}

// DelayConfig holds the simulated backend latencies.
type DelayConfig struct {
	Login time.Duration `env:"LOGIN_DELAY, default=1s"`
	Post  time.Duration `env:"POST_DELAY,  default=2s"`
	Claim time.Duration `env:"CLAIM_DELAY, default=1s"`
}

// Longest returns the largest configured delay.
func (d DelayConfig) Longest() time.Duration {
	return max(d.Login, d.Post, d.Claim)
}

type NotifyConfig struct {
	Workers int `env:"NOTIFY_WORKERS, default=4"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI,      default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,       default=foodshare"`
	AppName  string `env:"MONGO_APP_NAME, default=foodshare"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,      default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,        default=0"`
	PoolSize int    `env:"REDIS_POOL_SIZE, default=0"`
}

// devJWTSecret is the JWT_SECRET default; it is only accepted in development.
const devJWTSecret = "dev-secret-change-me"

// IsDevelopment reports whether the service runs with ENV=development.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// UsesMemory reports whether sessions and accounts live in process memory
// instead of Redis and MongoDB.
func (c *Config) UsesMemory() bool {
	return c.CacheDriver == "memory"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from l and validates the enumerated settings.
func LoadWith(l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}

	switch cfg.CacheDriver {
	case "redis", "memory":
	default:
		return nil, fmt.Errorf("CACHE_DRIVER must be redis or memory, got %q", cfg.CacheDriver)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	if cfg.JWTSecret == devJWTSecret && !cfg.IsDevelopment() {
		return nil, fmt.Errorf("JWT_SECRET must be set when ENV is %q", cfg.Env)
	}
	switch cfg.Auth.Mode {
	case "mock", "strict":
	default:
		return nil, fmt.Errorf("AUTH_MODE must be mock or strict, got %q", cfg.Auth.Mode)
	}
	return &cfg, nil
}
