package testutils

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// RedisTestURLEnv points integration tests at a Redis instance
const RedisTestURLEnv = "BALANCER_TEST_REDIS_URL"

// DefaultTestRedisURL uses DB 15 to stay clear of real data
const DefaultTestRedisURL = "redis://localhost:6379/15"

// CreateTestRedisClientOrSkip returns a flushed client, skipping the test when
// Redis is unreachable or -short is set
func CreateTestRedisClientOrSkip(t *testing.T) redis.UniversalClient {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping Redis integration test in short mode")
	}

	redisURL := os.Getenv(RedisTestURLEnv)
	if redisURL == "" {
		redisURL = DefaultTestRedisURL
	}

	opts, err := redis.ParseURL(redisURL)
	require.NoError(t, err, "invalid %s", RedisTestURLEnv)

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := WaitForRedis(ctx, client, time.Second); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available for testing: %v", err)
	}

	require.NoError(t, client.FlushDB(ctx).Err(), "Failed to flush test Redis database")

	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})

	return client
}

// WaitForRedis pings client until it answers or timeout passes
func WaitForRedis(ctx context.Context, client redis.UniversalClient, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	var lastErr error

	for time.Now().Before(deadline) {
		pingCtx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
		lastErr = client.Ping(pingCtx).Err()
		cancel()

		if lastErr == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}

	return fmt.Errorf("redis not ready after %v: %w", timeout, lastErr)
}
