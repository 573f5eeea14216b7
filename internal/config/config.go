// Package config provides hierarchical configuration loading for the
// reminder bot. Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the bot process.
type Config struct {
	Server        Server        `yaml:"server"`
	Slack         Slack         `yaml:"slack"`
	Postgres      Postgres      `yaml:"postgres"`
	Logging       Logging       `yaml:"logging"`
	Breaker       Breaker       `yaml:"breaker"`
	Worker        Worker        `yaml:"worker"`
	Observability Observability `yaml:"observability"`
}

// Server holds HTTP server configuration.
type Server struct {
	Port string `yaml:"port"`
}

// Slack holds messaging platform credentials and client tuning.
// BotToken and SigningSecret have no defaults; the process refuses to
// start without them.
type Slack struct {
	BotToken      string `yaml:"bot_token"`
	SigningSecret string `yaml:"signing_secret"`
	APIBaseURL    string `yaml:"api_base_url"`
	MaxConcurrent int64  `yaml:"max_concurrent"` // cap on in-flight Web API calls
}

// Postgres holds PostgreSQL connection configuration. DSN has no
// default; the process refuses to start without it.
type Postgres struct {
	DSN             string        `yaml:"dsn"`
	MaxConns        int32         `yaml:"max_conns"`
	MinConns        int32         `yaml:"min_conns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`
	HealthCheck     time.Duration `yaml:"health_check"`
}

// Logging holds structured logging configuration. Buffered moves
// record encoding off the handler path; records are dropped rather
// than blocking when the buffer is full.
type Logging struct {
	Level    string `yaml:"level"`
	Service  string `yaml:"service"`
	Buffered bool   `yaml:"buffered"`
}

// Breaker holds circuit breaker configuration for the Slack client.
type Breaker struct {
	MaxFailures int           `yaml:"max_failures"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Worker holds post-acknowledgment work configuration. Timeout bounds
// the store and messaging calls an interaction may spend after its
// acknowledgment has been written.
type Worker struct {
	Timeout time.Duration `yaml:"timeout"`
}

// Observability holds OpenTelemetry export configuration. An empty
// OTLPEndpoint disables exporting; instruments stay no-op.
type Observability struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
}

// Defaults returns a Config with sensible default values for local
// development. Secrets and the store DSN are deliberately absent.
func Defaults() Config {
	return Config{
		Server: Server{
			Port: "3000",
		},
		Slack: Slack{
			APIBaseURL:    "https://slack.com/api",
			MaxConcurrent: 8,
		},
		Postgres: Postgres{
			MaxConns:        10,
			MinConns:        2,
			MaxConnLifetime: time.Hour,
			MaxConnIdleTime: 10 * time.Minute,
			HealthCheck:     time.Minute,
		},
		Logging: Logging{
			Level:   "info",
			Service: "reminder-bot",
		},
		Breaker: Breaker{
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		},
		Worker: Worker{
			Timeout: 10 * time.Second,
		},
	}
}
