package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// CLIFlags holds command-line overrides. A nil field means the flag was
// not set and the lower-precedence sources win.
type CLIFlags struct {
	Port       *string
	LogLevel   *string
	DSN        *string
	ConfigPath *string
}

// ParseFlags parses command-line arguments into CLIFlags.
// Unset flags stay nil so they do not clobber YAML/env values.
func ParseFlags(args []string) (CLIFlags, error) {
	fs := flag.NewFlagSet("reminderbot", flag.ContinueOnError)
	port := fs.String("port", "", "HTTP listen port (overrides config)")
	portShort := fs.String("p", "", "shorthand for --port")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	dsn := fs.String("dsn", "", "Postgres connection string (overrides DATABASE_URL)")
	configPath := fs.String("config", "", "path to YAML config file")
	configShort := fs.String("c", "", "shorthand for --config")

	if err := fs.Parse(args); err != nil {
		return CLIFlags{}, fmt.Errorf("parse flags: %w", err)
	}

	var out CLIFlags
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			out.Port = port
		case "p":
			out.Port = portShort
		case "log-level":
			out.LogLevel = logLevel
		case "dsn":
			out.DSN = dsn
		case "config":
			out.ConfigPath = configPath
		case "c":
			out.ConfigPath = configShort
		}
	})
	return out, nil
}

// applyCLI overlays set flags onto cfg. CLI has the highest precedence.
func applyCLI(cfg *Config, flags CLIFlags) {
	if flags.Port != nil {
		cfg.Server.Port = *flags.Port
	}
	if flags.LogLevel != nil {
		cfg.Logging.Level = *flags.LogLevel
	}
	if flags.DSN != nil {
		cfg.Postgres.DSN = *flags.DSN
	}
}

// LoadWithCLI returns a Config using the full hierarchy:
// defaults < YAML < ENV < CLI. The resolved YAML path is returned for
// startup logging.
func LoadWithCLI(flags CLIFlags) (*Config, string, error) {
	path := DefaultConfigFile
	if v := os.Getenv("REMINDERBOT_CONFIG"); v != "" {
		path = v
	}
	if flags.ConfigPath != nil {
		path = *flags.ConfigPath
	}

	_ = godotenv.Load()

	cfg := Defaults()

	if err := loadYAML(&cfg, path); err != nil {
		return nil, "", fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)
	applyCLI(&cfg, flags)

	if err := validate(&cfg); err != nil {
		return nil, "", fmt.Errorf("config validate: %w", err)
	}

	return &cfg, path, nil
}
