package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultPort             = 3000
	defaultStatementTimeout = 5 * time.Second
	defaultMaxOpenConns     = 10
	defaultNATSSubject      = "scoreboard.score.updated"
	defaultRateLimitRPS     = 10
	defaultRateLimitBurst   = 20
)

// Config struct to hold the configuration settings
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Postgres      PostgresConfig      `yaml:"postgres"`
	Edit          EditConfig          `yaml:"edit"`
	NATS          NATSConfig          `yaml:"nats"`
	Observability ObservabilityConfig `yaml:"observability"`
	// Categories replaces the built-in category table when non-empty.
	Categories []CategoryConfig `yaml:"categories"`
}

// HTTPConfig holds the public listener configuration.
type HTTPConfig struct {
	Port           int             `yaml:"port"`
	TrustProxy     bool            `yaml:"trust_proxy"`
	AllowedOrigins []string        `yaml:"allowed_origins"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig bounds score writes per client address. RPS <= 0 disables it.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN              string        `yaml:"dsn"`
	StatementTimeout time.Duration `yaml:"statement_timeout"`
	MaxOpenConns     int           `yaml:"max_open_conns"`
	AutoMigrate      *bool         `yaml:"auto_migrate"`
}

// EditConfig holds the shared secret gating score writes. An empty key leaves writes open.
type EditConfig struct {
	Key string `yaml:"key"`
}

// NATSConfig holds NATS configuration. An empty URL disables change notifications.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
}

// CategoryConfig describes one entry of the static category table.
type CategoryConfig struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Group string `yaml:"group"`
	Order int    `yaml:"order"`
}

// ShouldAutoMigrate reports whether migrations run at startup. Defaults to true.
func (p PostgresConfig) ShouldAutoMigrate() bool {
	return p.AutoMigrate == nil || *p.AutoMigrate
}

// EditKeyRequired reports whether score writes need the shared secret.
func (c *Config) EditKeyRequired() bool {
	return c.Edit.Key != ""
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// No file: environment variables only.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv overrides file values with environment variables when present.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("STATEMENT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid STATEMENT_TIMEOUT value: %w", err)
		}
		cfg.Postgres.StatementTimeout = d
	}
	if v := os.Getenv("AUTO_MIGRATE"); v != "" {
		b := v == "true"
		cfg.Postgres.AutoMigrate = &b
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT value: %w", err)
		}
		cfg.HTTP.Port = port
	}
	if v := os.Getenv("TRUST_PROXY"); v != "" {
		cfg.HTTP.TrustProxy = v == "true"
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("EDIT_KEY"); v != "" {
		cfg.Edit.Key = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("NATS_SUBJECT"); v != "" {
		cfg.NATS.Subject = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = defaultPort
	}
	if c.HTTP.RateLimit == (RateLimitConfig{}) {
		c.HTTP.RateLimit = RateLimitConfig{RPS: defaultRateLimitRPS, Burst: defaultRateLimitBurst}
	}
	if c.Postgres.StatementTimeout == 0 {
		c.Postgres.StatementTimeout = defaultStatementTimeout
	}
	if c.Postgres.MaxOpenConns == 0 {
		c.Postgres.MaxOpenConns = defaultMaxOpenConns
	}
	if c.NATS.Subject == "" {
		c.NATS.Subject = defaultNATSSubject
	}
	if c.Observability.LogLevel == "" {
		c.Observability.LogLevel = "info"
	}
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if c.Postgres.DSN == "" {
		return errors.New("postgres DSN is not set (config postgres.dsn or DATABASE_URL)")
	}
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.HTTP.Port)
	}
	if c.Postgres.StatementTimeout < 0 {
		return fmt.Errorf("invalid statement timeout: %s", c.Postgres.StatementTimeout)
	}
	if c.HTTP.RateLimit.RPS > 0 && c.HTTP.RateLimit.Burst < 1 {
		return fmt.Errorf("invalid rate limit burst: %d", c.HTTP.RateLimit.Burst)
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
