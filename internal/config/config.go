package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// auth
	AuthRequired                bool `toml:"auth_required"`
	LoginRateLimitAllowedPerMin int  `toml:"login_rate_limit_per_min"`
	// routines
	Timezone          string `toml:"timezone"`
	TodayCacheSizeMB  int    `toml:"today_cache_size_mb"`
	TodayCacheTTLSecs int    `toml:"today_cache_ttl_secs"`
	// cors
	AllowedOrigins []string `toml:"allowed_origins"`
}

// IsDevelopment reports whether cookies may be sent over plain http.
func (c *Config) IsDevelopment() bool {
	switch strings.ToLower(c.Environment) {
	case "", "dev", "development", "ddev", "dockerdev":
		return true
	default:
		return false
	}
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}

	if cfg == nil {
		return nil, fmt.Errorf("config section for env [%s] missing", env)
	}

	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}
	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = 5
	}
	if c.TodayCacheSizeMB <= 0 {
		c.TodayCacheSizeMB = 1
	}
	if c.TodayCacheTTLSecs <= 0 {
		c.TodayCacheTTLSecs = 300
	}
}

func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode toml [%s]: %w", path, err)
	}
	return t.Get(env)
}

// Secrets are never kept in the TOML file.
type Secrets struct {
	JWTSecret        string `env:"JWT_SECRET"`
	RedisPassword    string `env:"RUTINAS_REDIS_PASS"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	SentryDSN        string `env:"SENTRY_DSN"`
	HoneycombEnabled bool   `env:"HONEYCOMB_ENABLED" envDefault:"false"`
	HoneycombAPIKey  string `env:"HONEYCOMB_API_KEY"`
	OtelServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"rutinas"`
}

func LoadSecrets() (Secrets, error) {
	var s Secrets
	if err := env.Parse(&s); err != nil {
		return Secrets{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// LoadSecretsFrom reads secrets from the given map instead of the process environment.
func LoadSecretsFrom(environment map[string]string) (Secrets, error) {
	var s Secrets
	if err := env.ParseWithOptions(&s, env.Options{Environment: environment}); err != nil {
		return Secrets{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
