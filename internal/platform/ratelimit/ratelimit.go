// Package ratelimit caps requests per key (caller id or client ip). Local keeps
// token buckets in process; Redis shares a fixed window across replicas.
package ratelimit

import "context"

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Nop allows everything.
type Nop struct{}

func (Nop) Allow(context.Context, string) (bool, error) { return true, nil }
