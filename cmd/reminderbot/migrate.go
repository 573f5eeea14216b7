package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/operations777/Reminder-bot/internal/adapter/postgres"
)

// runMigrate dispatches migration subcommands (up, down, status).
func runMigrate(args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" {
		printMigrateHelp()
		return nil
	}

	switch args[0] {
	case "up":
		return runMigrateUp(args[1:])
	case "down":
		return runMigrateDown(args[1:])
	case "status":
		return runMigrateStatus(args[1:])
	default:
		printMigrateHelp()
		return fmt.Errorf("unknown migrate command: %s", args[0])
	}
}

func printMigrateHelp() {
	fmt.Fprintf(os.Stderr, `Usage: reminderbot migrate <command> [options]

Commands:
  up       Apply all pending migrations
  down     Roll back migrations
  status   Show the current migration version
  help     Show this help message

The database is taken from --dsn, falling back to DATABASE_URL.

Examples:
  reminderbot migrate up
  reminderbot migrate down --steps 1
  reminderbot migrate status --dsn postgres://localhost:5432/reminderbot
`)
}

// resolveDSN picks the connection string without requiring a full
// service config, so migrations can run where Slack credentials are
// absent.
func resolveDSN(flagDSN string) (string, error) {
	if flagDSN != "" {
		return flagDSN, nil
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("--dsn is required (or set DATABASE_URL)")
}

func runMigrateUp(args []string) error {
	fs := flag.NewFlagSet("up", flag.ContinueOnError)
	dsn := fs.String("dsn", "", "postgres connection string")
	if err := fs.Parse(args); err != nil {
		return err
	}

	target, err := resolveDSN(*dsn)
	if err != nil {
		return err
	}

	if err := postgres.RunMigrations(context.Background(), target); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Migrations applied.")
	return nil
}

func runMigrateDown(args []string) error {
	fs := flag.NewFlagSet("down", flag.ContinueOnError)
	dsn := fs.String("dsn", "", "postgres connection string")
	steps := fs.Int("steps", 1, "number of migrations to roll back")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *steps < 1 {
		return fmt.Errorf("--steps must be >= 1")
	}

	target, err := resolveDSN(*dsn)
	if err != nil {
		return err
	}

	if err := postgres.RollbackMigrations(context.Background(), target, *steps); err != nil {
		return fmt.Errorf("roll back migrations: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Rolled back %d migration(s).\n", *steps)
	return nil
}

func runMigrateStatus(args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	dsn := fs.String("dsn", "", "postgres connection string")
	if err := fs.Parse(args); err != nil {
		return err
	}

	target, err := resolveDSN(*dsn)
	if err != nil {
		return err
	}

	version, err := postgres.MigrationVersion(context.Background(), target)
	if err != nil {
		return fmt.Errorf("read migration version: %w", err)
	}
	fmt.Printf("Current migration version: %d\n", version)
	return nil
}
