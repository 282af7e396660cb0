package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=5000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret           string        `env:"JWT_SECRET"`
	JWTExpire           time.Duration `env:"JWT_EXPIRE,             default=720h"`
	JWTCookieExpireDays int           `env:"JWT_COOKIE_EXPIRE_DAYS, default=30"`
	ResetTokenTTL       time.Duration `env:"RESET_TOKEN_TTL,        default=10m"`

	Mongo     MongoConfig
	Redis     RedisConfig
	SMTP      SMTPConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=devcamper"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host      string `env:"SMTP_HOST, default=localhost"`
	Port      int    `env:"SMTP_PORT, default=25"`
	Username  string `env:"SMTP_USERNAME"`
	Password  string `env:"SMTP_PASSWORD"`
	FromName  string `env:"FROM_NAME,  default=DevCamper"`
	FromEmail string `env:"FROM_EMAIL, default=noreply@devcamper.io"`
}

type RateLimitConfig struct {
	Window time.Duration `env:"RATE_LIMIT_WINDOW, default=1m"`
	Max    int           `env:"RATE_LIMIT_MAX,    default=10"`
}

// IsProduction reports whether the service runs in production deployment
// mode; session cookies are marked Secure only then.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
