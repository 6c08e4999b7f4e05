// Package redisconn opens the optional Redis connection.
//
// The service keeps no state in Redis; the connection exists so deployments
// that front this API with a shared cache tier can verify connectivity at
// startup and watch it under /readyz. Nothing is read or written after the
// initial ping.
package redisconn

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

// connectMaxElapsed bounds startup connection retries.
const connectMaxElapsed = 15 * time.Second

// Connect parses url, dials Redis and verifies the connection with a bounded
// exponential-backoff ping. Returns the live client; callers own Close.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("op=redisconn.Connect: parse url: %w", err)
	}
	client := redis.NewClient(opts)

	expo := backoff.NewExponentialBackOff()
	expo.MaxElapsedTime = connectMaxElapsed
	op := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			slog.Warn("redis ping failed; retrying", slog.Any("error", err))
			return err
		}
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(expo, ctx)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("op=redisconn.Connect: ping: %w", err)
	}
	slog.Info("redis connected", slog.String("addr", opts.Addr))
	return client, nil
}

// Check returns a readiness probe bound to the client, or nil when Redis is
// not configured.
func Check(client *redis.Client) func(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
