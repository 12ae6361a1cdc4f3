package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Session backends accepted by SESSION_BACKEND.
const (
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API     APIConfig
	Session SessionConfig
	UI      UIConfig

	Mongo MongoConfig
	Redis RedisConfig
}

// APIConfig points at the ImageHub REST API. A zero timeout means none.
type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL,     default=http://localhost:8081"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT, default=0s"`
}

type SessionConfig struct {
	Backend      string        `env:"SESSION_BACKEND, default=redis"`
	TTL          time.Duration `env:"SESSION_TTL,     default=24h"`
	CookieName   string        `env:"COOKIE_NAME,     default=imagehub_session"`
	CookieSecure bool          `env:"COOKIE_SECURE,   default=false"`
	CSRFKey      string        `env:"CSRF_KEY"`
}

type UIConfig struct {
	PageSize            int           `env:"IMAGES_PAGE_SIZE,      default=10"`
	SignupRedirectDelay time.Duration `env:"SIGNUP_REDIRECT_DELAY, default=2s"`
	LoginRateLimit      RateLimit     `env:"LOGIN_RATE_LIMIT,      default=10/min"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=imagehub_web"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// RateLimit is "<requests>/<interval>", e.g. "10/min". Zero requests disables it.
type RateLimit struct {
	Requests int
	Interval time.Duration
}

// EnvDecode implements envconfig.Decoder.
func (r *RateLimit) EnvDecode(value string) error {
	value = strings.TrimSpace(value)
	if value == "" || value == "0" {
		*r = RateLimit{}
		return nil
	}
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests < 0 {
		return fmt.Errorf("invalid request count: %v", parts[0])
	}

	var interval time.Duration
	switch unit := strings.ToLower(strings.TrimSpace(parts[1])); unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return fmt.Errorf("unsupported interval unit: %s", unit)
	}

	*r = RateLimit{Requests: requests, Interval: interval}
	return nil
}

// Enabled reports whether requests should be throttled at all.
func (r RateLimit) Enabled() bool {
	return r.Requests > 0 && r.Interval > 0
}

// Development reports whether human-friendly output should be used.
func (c *Config) Development() bool {
	return strings.EqualFold(c.Env, "development")
}

// Validate rejects combinations envconfig cannot express.
func (c *Config) Validate() error {
	switch c.Session.Backend {
	case BackendRedis, BackendMongo, BackendMemory:
	default:
		return fmt.Errorf("config: unknown SESSION_BACKEND %q", c.Session.Backend)
	}
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("config: API_BASE_URL must not be empty")
	}
	if c.UI.PageSize <= 0 {
		return fmt.Errorf("config: IMAGES_PAGE_SIZE must be positive")
	}
	if c.Session.CSRFKey != "" && len(c.Session.CSRFKey) != 32 {
		return fmt.Errorf("config: CSRF_KEY must be exactly 32 bytes")
	}
	return nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through an explicit lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
