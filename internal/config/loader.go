package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration when
// REMINDERBOT_CONFIG is unset.
const DefaultConfigFile = "reminderbot.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// The YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	path := os.Getenv("REMINDERBOT_CONFIG")
	if path == "" {
		path = DefaultConfigFile
	}
	return LoadFrom(path)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	// A local .env file feeds the env overlay; its absence is fine.
	_ = godotenv.Load()

	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.Slack.BotToken, "SLACK_BOT_TOKEN")
	setString(&cfg.Slack.SigningSecret, "SLACK_SIGNING_SECRET")
	setString(&cfg.Slack.APIBaseURL, "SLACK_API_BASE_URL")
	setInt64(&cfg.Slack.MaxConcurrent, "REMINDERBOT_SLACK_MAX_CONCURRENT")
	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "REMINDERBOT_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "REMINDERBOT_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "REMINDERBOT_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "REMINDERBOT_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "REMINDERBOT_PG_HEALTH_CHECK")
	setString(&cfg.Logging.Level, "REMINDERBOT_LOG_LEVEL")
	setString(&cfg.Logging.Service, "REMINDERBOT_LOG_SERVICE")
	setBool(&cfg.Logging.Buffered, "REMINDERBOT_LOG_BUFFERED")
	setInt(&cfg.Breaker.MaxFailures, "REMINDERBOT_BREAKER_MAX_FAILURES")
	setDuration(&cfg.Breaker.Timeout, "REMINDERBOT_BREAKER_TIMEOUT")
	setDuration(&cfg.Worker.Timeout, "REMINDERBOT_WORKER_TIMEOUT")
	setString(&cfg.Observability.OTLPEndpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Slack.BotToken == "" {
		return errors.New("slack.bot_token is required")
	}
	if cfg.Slack.SigningSecret == "" {
		return errors.New("slack.signing_secret is required")
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if cfg.Postgres.MaxConns < 1 {
		return errors.New("postgres.max_conns must be >= 1")
	}
	if cfg.Slack.MaxConcurrent < 1 {
		return errors.New("slack.max_concurrent must be >= 1")
	}
	if cfg.Breaker.MaxFailures < 1 {
		return errors.New("breaker.max_failures must be >= 1")
	}
	if cfg.Worker.Timeout <= 0 {
		return errors.New("worker.timeout must be positive")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
