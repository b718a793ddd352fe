// Package cache provides the Redis client and Redis-backed helpers.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"datablog/internal/middleware"

	"github.com/redis/go-redis/v9"
)

type metricsHook struct{}

func (metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// NewClient builds a client for addr ("host:port" or a redis:// URL) with the metrics hook installed.
func NewClient(addr string) (*redis.Client, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, err
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)
	client.AddHook(metricsHook{})
	return client, nil
}

// Connect creates a client and pings it. Redis is optional: on failure it logs and returns nil,
// and every Redis-backed feature degrades to a no-op.
func Connect(ctx context.Context, addr string) *redis.Client {
	client, err := NewClient(addr)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "invalid REDIS_URL, continuing without redis",
			slog.String("addr", addr), slog.String("error", err.Error()))
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "redis unavailable, continuing without redis",
			slog.String("addr", addr), slog.String("error", err.Error()))
		_ = client.Close()
		return nil
	}

	middleware.Logger.InfoContext(ctx, "redis connected", slog.String("addr", addr))
	return client
}
