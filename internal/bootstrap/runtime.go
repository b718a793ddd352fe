// Package bootstrap wires the process runtime: tracing, database, Redis and the
// reference data every environment needs.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"datablog/internal/cache"
	"datablog/internal/config"
	"datablog/internal/database"
	"datablog/internal/observability"
	"datablog/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedReferenceData loads roles, the configured admin and, with SEED_ON_START,
	// the fixture categories and tags.
	SeedReferenceData bool
}

// Runtime holds the shared connections of a process.
type Runtime struct {
	DB    *gorm.DB
	Redis *redis.Client

	shutdownTracing func(context.Context) error
}

// InitRuntime starts tracing, connects to the database and Redis, and seeds reference data.
// Redis is optional and may come back nil.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	shutdown, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "datablog-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSampler,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing init failed: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	rt := &Runtime{
		DB:              db,
		Redis:           cache.Connect(ctx, cfg.RedisURL),
		shutdownTracing: shutdown,
	}

	if opts.SeedReferenceData {
		if err := SeedReferenceData(ctx, cfg, db); err != nil {
			_ = rt.Close(ctx)
			return nil, err
		}
	}
	return rt, nil
}

// SeedReferenceData makes sure the roles exist and the configured admin can log in.
// With SEED_ON_START it also loads the fixture categories and tags.
func SeedReferenceData(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	fx, err := seed.DefaultFixtures()
	if err != nil {
		return err
	}

	s := seed.NewSeeder(db)
	if err := s.Roles(ctx, fx.Roles); err != nil {
		return fmt.Errorf("failed to seed roles: %w", err)
	}
	if cfg.AdminEmail != "" {
		if _, err := s.Admin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return fmt.Errorf("failed to bootstrap admin account: %w", err)
		}
	}
	if cfg.SeedOnStart {
		if err := s.Categories(ctx, fx.Categories); err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
		if err := s.Tags(ctx, fx.Tags); err != nil {
			return fmt.Errorf("failed to seed tags: %w", err)
		}
	}
	return nil
}

// Close flushes traces and closes the connections.
func (r *Runtime) Close(ctx context.Context) error {
	var errs []error
	if r.shutdownTracing != nil {
		errs = append(errs, r.shutdownTracing(ctx))
	}
	if r.Redis != nil {
		errs = append(errs, r.Redis.Close())
	}
	if r.DB != nil {
		if sqlDB, err := r.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}

// ShutdownTracing flushes pending spans. The server closes the connections itself.
func (r *Runtime) ShutdownTracing(ctx context.Context) error {
	if r.shutdownTracing == nil {
		return nil
	}
	return r.shutdownTracing(ctx)
}
