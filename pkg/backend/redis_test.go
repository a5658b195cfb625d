package backend

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// setupTestRedis creates a test Redis client.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15, // Use a separate DB for tests
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

func TestNewRedis_NilCompute(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	if _, err := NewRedis(client, nil, zerolog.Nop()); err == nil {
		t.Error("NewRedis() with nil compute backend should return error")
	}
}

func TestRedis_PopulatesOrigin(t *testing.T) {
	client := setupTestRedis(t)
	compute := NewSimulated(0, zerolog.Nop())

	b, err := NewRedis(client, compute, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRedis() error = %v", err)
	}

	first := b.Request("request1")
	if first != Response("request1") {
		t.Errorf("Request() = %q, want %q", first, Response("request1"))
	}

	stored, err := client.Get(context.Background(), OriginKeyPrefix+"request1").Result()
	if err != nil {
		t.Fatalf("origin record not written: %v", err)
	}
	if stored != first {
		t.Errorf("origin record = %q, want %q", stored, first)
	}

	// Second request is served from the origin store without computing.
	second := b.Request("request1")
	if second != first {
		t.Errorf("second Request() = %q, want %q", second, first)
	}
	if compute.Invocations() != 1 {
		t.Errorf("compute invocations = %d, want 1", compute.Invocations())
	}
}

func TestRedis_ServesExistingRecord(t *testing.T) {
	client := setupTestRedis(t)
	compute := NewSimulated(0, zerolog.Nop())

	if err := client.Set(context.Background(), OriginKeyPrefix+"seeded", "seeded value", 0).Err(); err != nil {
		t.Fatalf("seed origin: %v", err)
	}

	b, err := NewRedis(client, compute, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRedis() error = %v", err)
	}

	if got := b.Request("seeded"); got != "seeded value" {
		t.Errorf("Request() = %q, want %q", got, "seeded value")
	}
	if compute.Invocations() != 0 {
		t.Errorf("compute invocations = %d, want 0", compute.Invocations())
	}
}

func TestRedis_FallsBackWhenUnavailable(t *testing.T) {
	// Nothing listens on this port; every Redis call fails.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	compute := NewSimulated(0, zerolog.Nop())
	b, err := NewRedis(client, compute, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewRedis() error = %v", err)
	}

	if got := b.Request("k"); got != Response("k") {
		t.Errorf("Request() = %q, want %q", got, Response("k"))
	}
	if compute.Invocations() != 1 {
		t.Errorf("compute invocations = %d, want 1", compute.Invocations())
	}
}
