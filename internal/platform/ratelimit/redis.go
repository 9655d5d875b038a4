package ratelimit

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Redis is a fixed-window counter shared by every replica: INCR on a key per
// window, with the key expiring when the window closes.
type Redis struct {
	rdb    *goredis.Client
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

func NewRedis(rdb *goredis.Client, prefix string, limit int, window time.Duration) *Redis {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &Redis{rdb: rdb, prefix: prefix, limit: int64(limit), window: window, now: time.Now}
}

func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	bucket := r.now().UnixNano() / int64(r.window)
	k := fmt.Sprintf("%s:%s:%d", r.prefix, key, bucket)

	pipe := r.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	return incr.Val() <= r.limit, nil
}
