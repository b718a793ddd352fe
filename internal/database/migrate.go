package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"datablog/internal/middleware"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

func gooseInit() error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	return goose.SetDialect("postgres")
}

// Migrate applies every pending embedded migration.
func Migrate(ctx context.Context, db *sql.DB) error {
	if err := gooseInit(); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	middleware.Logger.InfoContext(ctx, "database migrations applied")
	return nil
}

// Rollback reverts the most recent migration.
func Rollback(ctx context.Context, db *sql.DB) error {
	if err := gooseInit(); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}
	if err := goose.DownContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("goose down: %w", err)
	}
	middleware.Logger.InfoContext(ctx, "database migration rolled back")
	return nil
}

// Version returns the currently applied migration version.
func Version(ctx context.Context, db *sql.DB) (int64, error) {
	if err := gooseInit(); err != nil {
		return 0, fmt.Errorf("goose set dialect: %w", err)
	}
	return goose.GetDBVersionContext(ctx, db)
}
