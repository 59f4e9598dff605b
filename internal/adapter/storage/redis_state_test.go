package storage

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisState_RoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	repo := NewRedisStateRepository(client)

	// Setup
	client.Del(ctx, "state:test-session")

	payload := []byte(`{"isAuthenticated":true,"sidebarCollapsed":false}`)
	if err := repo.Save(ctx, "test-session", payload); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := repo.Load(ctx, "test-session")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("expected %s, got %s", payload, got)
	}

	// Cleanup
	client.Del(ctx, "state:test-session")
}

func TestRedisState_LoadMissingKey(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	repo := NewRedisStateRepository(client)

	client.Del(ctx, "state:nonexistent")

	got, err := repo.Load(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing key, got %s", got)
	}
}

func TestRedisState_Delete(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	repo := NewRedisStateRepository(client)

	if err := repo.Save(ctx, "delete-test", []byte(`{}`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := repo.Delete(ctx, "delete-test"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got, err := repo.Load(ctx, "delete-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}
