// Command migrate runs schema operations for the backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"datablog/internal/config"
	"datablog/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: go run ./cmd/migrate <up|down|status|auto>")
}

func run() error {
	flag.Parse()
	if flag.NArg() < 1 {
		return usage()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: false})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("unwrap database: %w", err)
	}
	defer sqlDB.Close()

	ctx := context.Background()
	switch cmd := strings.ToLower(strings.TrimSpace(flag.Arg(0))); cmd {
	case "up":
		if err := database.Migrate(ctx, sqlDB); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
		log.Println("sql migrations applied")
	case "down":
		if err := database.Rollback(ctx, sqlDB); err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		log.Println("rolled back the latest migration")
	case "status":
		version, err := database.Version(ctx, sqlDB)
		if err != nil {
			return fmt.Errorf("schema status failed: %w", err)
		}
		log.Printf("schema version=%d env=%s", version, cfg.Env)
	case "auto":
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("auto schema apply failed: %w", err)
		}
		log.Println("automigrations applied")
	default:
		return usage()
	}
	return nil
}
