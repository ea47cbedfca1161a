package testutil

// Package testutil provides shared helpers for tests that need external
// infrastructure. Tests skip rather than fail when Redis is unavailable,
// unless TEST_REQUIRE_REDIS is set.

import (
	"context"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// TestingTB is the subset of testing.TB these helpers use.
type TestingTB interface {
	Helper()
	Skip(args ...any)
	Fatal(args ...any)
	Logf(format string, args ...any)
	Cleanup(func())
}

func envBool(name string) bool {
	v, err := strconv.ParseBool(os.Getenv(name))
	return err == nil && v
}

func requireRedis() bool { return envBool("TEST_REQUIRE_REDIS") }

// GetTestRedisAddr returns a reachable Redis address for testing, checking
// REDIS_ADDR first and then common local addresses.
func GetTestRedisAddr(t TestingTB) (string, bool) {
	t.Helper()

	candidates := []string{os.Getenv("REDIS_ADDR"), "localhost:6379", "redis:6379"}
	for _, addr := range candidates {
		if addr == "" {
			continue
		}
		conn, err := net.DialTimeout("tcp", addr, time.Second)
		if err != nil {
			continue
		}
		if cerr := conn.Close(); cerr != nil {
			t.Logf("warning: failed to close redis probe connection: %v", cerr)
		}
		return addr, true
	}
	return "", false
}

// SetupTestRedis creates a Redis client for testing. Tests are skipped if
// Redis is not available, or fail when TEST_REQUIRE_REDIS is set.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()

	addr, ok := GetTestRedisAddr(t)
	if !ok {
		if requireRedis() {
			t.Fatal("Redis not available for testing")
		}
		t.Skip("Redis not available for testing")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		if cerr := client.Close(); cerr != nil {
			t.Logf("warning: failed to close redis client after ping error: %v", cerr)
		}
		if requireRedis() {
			t.Fatal("Redis not reachable for testing")
		}
		t.Skip("Redis not reachable for testing")
	}

	t.Cleanup(func() {
		if cerr := client.Close(); cerr != nil {
			t.Logf("warning: failed to close redis client: %v", cerr)
		}
	})

	return client
}
