package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	migrationsDir = "migrations"

	// MigrationTableName is the goose version table.
	MigrationTableName = "schema_migrations"
)

// MigrationCommands lists the commands accepted by Migrate.
var MigrationCommands = []string{"up", "down", "status", "version", "reset"}

// gooseLogger forwards goose output to slog. Fatalf does not exit; the
// error is returned to the caller instead.
type gooseLogger struct {
	logger *slog.Logger
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// Migrate runs a goose command against the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(
		slog.String("component", "migrations"),
		slog.String("command", command),
		slog.String("correlation_id", uuid.New().String()),
	)

	run, err := migrationFunc(command)
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(&gooseLogger{logger: log})
	goose.SetTableName(MigrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	start := time.Now()
	log.Info("running migrations")
	if err := run(ctx, db); err != nil {
		log.Error("migration failed",
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(start)))
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	log.Info("migrations finished", slog.Duration("duration", time.Since(start)))
	return nil
}

func migrationFunc(command string) (func(context.Context, *sql.DB) error, error) {
	switch command {
	case "up":
		return func(ctx context.Context, db *sql.DB) error {
			return goose.UpContext(ctx, db, migrationsDir)
		}, nil
	case "down":
		return func(ctx context.Context, db *sql.DB) error {
			return goose.DownContext(ctx, db, migrationsDir)
		}, nil
	case "status":
		return func(ctx context.Context, db *sql.DB) error {
			return goose.StatusContext(ctx, db, migrationsDir)
		}, nil
	case "version":
		return func(ctx context.Context, db *sql.DB) error {
			return goose.VersionContext(ctx, db, migrationsDir)
		}, nil
	case "reset":
		return func(ctx context.Context, db *sql.DB) error {
			return goose.ResetContext(ctx, db, migrationsDir)
		}, nil
	}
	return nil, fmt.Errorf(
		"unknown migration command %q (expected one of %v)",
		command,
		MigrationCommands,
	)
}
