package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestLocalAllowsBurstThenBlocks(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewLocal(3, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if ok, _ := l.Allow(ctx, "a"); !ok {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if ok, _ := l.Allow(ctx, "a"); ok {
		t.Fatalf("fourth request should be blocked")
	}
	if ok, _ := l.Allow(ctx, "b"); !ok {
		t.Fatalf("other keys are independent")
	}

	// One token refills every 20s.
	now = now.Add(21 * time.Second)
	if ok, _ := l.Allow(ctx, "a"); !ok {
		t.Fatalf("expected refill after 21s")
	}
}

func TestLocalSweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewLocal(5, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	_, _ = l.Allow(ctx, "old")
	now = now.Add(2 * time.Hour)
	_, _ = l.Allow(ctx, "new")

	if n := l.Sweep(time.Hour); n != 1 {
		t.Fatalf("Sweep: want=1 got=%d", n)
	}
	if _, ok := l.entries["new"]; !ok {
		t.Fatalf("recent key should be kept")
	}
}

func TestNop(t *testing.T) {
	if ok, err := (Nop{}).Allow(context.Background(), "x"); !ok || err != nil {
		t.Fatalf("Nop: ok=%v err=%v", ok, err)
	}
}
