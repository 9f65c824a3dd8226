package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env  string `env:"APP_ENV" envDefault:"dev"`
	Port int    `env:"PORT" envDefault:"8080"`

	SMTPHost     string        `env:"SMTP_HOST"`
	SMTPPort     int           `env:"SMTP_PORT" envDefault:"465"`
	SMTPUser     string        `env:"SMTP_USER"`
	SMTPPassword string        `env:"SMTP_PASSWORD"`
	SMTPFrom     string        `env:"SMTP_FROM"`
	SMTPSecure   bool          `env:"SMTP_SECURE" envDefault:"true"`
	SendTimeout  time.Duration `env:"SEND_TIMEOUT" envDefault:"15s"`

	PaystackSecretKey string `env:"PAYSTACK_SECRET_KEY"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`

	TracingEnabled bool   `env:"TRACING_ENABLED"`
	OTLPEndpoint   string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// dedup store for replayed webhook deliveries; DEDUP_TTL=0 disables it
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB"`
	DedupTTL      time.Duration `env:"DEDUP_TTL" envDefault:"24h"`

	RateLimit  int           `env:"RATE_LIMIT" envDefault:"10"`
	RateWindow time.Duration `env:"RATE_WINDOW" envDefault:"1m"`
}

// Load reads an optional .env file, then parses the environment into Config
// and validates what must be present outside dev.
func Load() (Config, error) {
	// the .env file is optional, missing is fine
	_ = godotenv.Load()

	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	// dev runs against the log mailer, so SMTP settings may be absent there
	if c.Env == "dev" {
		return nil
	}

	var missing []string

	if c.SMTPHost == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if c.SMTPFrom == "" {
		missing = append(missing, "SMTP_FROM")
	}
	if c.PaystackSecretKey == "" {
		missing = append(missing, "PAYSTACK_SECRET_KEY")
	}

	if len(missing) > 0 {
		return errors.New("missing required configuration: " + strings.Join(missing, ", "))
	}

	return nil
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}
