package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

func TestRedisFixedWindow(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis integration tests")
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Fatalf("ping: %v", err)
	}

	fixed := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRedis(rdb, "test-"+uuid.NewString(), 2, time.Minute)
	r.now = func() time.Time { return fixed }

	for i := 0; i < 2; i++ {
		if ok, err := r.Allow(ctx, "k"); err != nil || !ok {
			t.Fatalf("request %d: ok=%v err=%v", i, ok, err)
		}
	}
	if ok, err := r.Allow(ctx, "k"); err != nil || ok {
		t.Fatalf("third request: ok=%v err=%v", ok, err)
	}

	r.now = func() time.Time { return fixed.Add(time.Minute) }
	if ok, err := r.Allow(ctx, "k"); err != nil || !ok {
		t.Fatalf("next window: ok=%v err=%v", ok, err)
	}
}
