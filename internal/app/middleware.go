package app

import (
	"context"
	"time"

	httpMW "github.com/yungbote/coursemarket-backend/internal/http/middleware"
	"github.com/yungbote/coursemarket-backend/internal/platform/logger"
	"github.com/yungbote/coursemarket-backend/internal/platform/ratelimit"
)

type Middleware struct {
	Auth        *httpMW.AuthMiddleware
	RateLimiter ratelimit.Limiter
}

func wireMiddleware(ctx context.Context, log *logger.Logger, cfg Config, clients Clients, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth:        httpMW.NewAuthMiddleware(log, services.Auth),
		RateLimiter: wireRateLimiter(ctx, log, cfg, clients),
	}
}

// wireRateLimiter shares limits across replicas through Redis when it is
// configured and falls back to per-process buckets otherwise.
func wireRateLimiter(ctx context.Context, log *logger.Logger, cfg Config, clients Clients) ratelimit.Limiter {
	if cfg.RateLimit <= 0 {
		log.Info("rate limiting disabled")
		return ratelimit.Nop{}
	}
	if clients.Redis != nil {
		log.Info("rate limiting via redis", "per_minute", cfg.RateLimit)
		return ratelimit.NewRedis(clients.Redis, "cm:ratelimit", cfg.RateLimit, cfg.RateWindow)
	}
	log.Info("rate limiting in-process", "per_minute", cfg.RateLimit)
	l := ratelimit.NewLocal(cfg.RateLimit, cfg.RateWindow)
	l.StartSweeper(ctx, 5*time.Minute, 10*time.Minute)
	return l
}
