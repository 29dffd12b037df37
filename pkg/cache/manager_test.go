package cache

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
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

func testKey(page string) Key {
	return Key{
		Endpoint:    "https://api.example.com/items",
		QueryParams: url.Values{"page": {page}, "pageSize": {"250"}},
	}
}

func TestManager_GetMiss(t *testing.T) {
	manager := NewManager(setupTestRedis(t))

	_, err := manager.Get(context.Background(), testKey("1"))
	if err != ErrCacheMiss {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}
}

func TestManager_SetAndGet(t *testing.T) {
	manager := NewManager(setupTestRedis(t))
	ctx := context.Background()

	entry := &Entry{
		Body:       []byte(`{"totalCount": 2, "data": [{"id": 1}, {"id": 2}]}`),
		StatusCode: 200,
		CachedAt:   time.Now(),
	}

	if err := manager.Set(ctx, testKey("1"), entry, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := manager.Get(ctx, testKey("1"))
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got.Body) != string(entry.Body) {
		t.Errorf("Body = %s, want %s", got.Body, entry.Body)
	}
	if got.StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200", got.StatusCode)
	}

	// A different page must not hit the same key.
	if _, err := manager.Get(ctx, testKey("2")); err != ErrCacheMiss {
		t.Errorf("Get(page 2) error = %v, want ErrCacheMiss", err)
	}
}

func TestManager_TTLExpiry(t *testing.T) {
	manager := NewManager(setupTestRedis(t))
	ctx := context.Background()

	entry := &Entry{Body: []byte(`{}`), StatusCode: 200, CachedAt: time.Now()}
	if err := manager.Set(ctx, testKey("1"), entry, 100*time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	time.Sleep(200 * time.Millisecond)

	if _, err := manager.Get(ctx, testKey("1")); err != ErrCacheMiss {
		t.Errorf("Get() after TTL error = %v, want ErrCacheMiss", err)
	}
}

func TestManager_SetValidation(t *testing.T) {
	manager := NewManager(setupTestRedis(t))
	ctx := context.Background()

	if err := manager.Set(ctx, testKey("1"), nil, time.Minute); err == nil {
		t.Error("Expected error for nil entry")
	}
	if err := manager.Set(ctx, testKey("1"), &Entry{}, 0); err == nil {
		t.Error("Expected error for zero TTL")
	}
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager(setupTestRedis(t))
	ctx := context.Background()

	entry := &Entry{Body: []byte(`{}`), StatusCode: 200, CachedAt: time.Now()}
	if err := manager.Set(ctx, testKey("1"), entry, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := manager.Delete(ctx, testKey("1")); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := manager.Get(ctx, testKey("1")); err != ErrCacheMiss {
		t.Errorf("Get() after delete error = %v, want ErrCacheMiss", err)
	}
}
