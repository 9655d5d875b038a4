package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/coursemarket-backend/internal/http/response"
	"github.com/yungbote/coursemarket-backend/internal/observability"
	"github.com/yungbote/coursemarket-backend/internal/platform/ctxutil"
	"github.com/yungbote/coursemarket-backend/internal/platform/logger"
	"github.com/yungbote/coursemarket-backend/internal/platform/ratelimit"
)

// RateLimit keys on the authenticated user when present and the client ip
// otherwise. Limiter errors fail open.
func RateLimit(log *logger.Logger, limiter ratelimit.Limiter, m *observability.Metrics) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
			key = "user:" + rd.UserID.String()
		}
		ok, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			if log != nil {
				log.Warn("rate limiter unavailable, allowing request", "error", err)
			}
			c.Next()
			return
		}
		if !ok {
			route := c.FullPath()
			if route == "" {
				route = "unknown"
			}
			m.IncRateLimited(route)
			c.Header("Retry-After", "60")
			response.AbortError(c, http.StatusTooManyRequests, "rate_limited", errors.New("too many requests"))
			return
		}
		c.Next()
	}
}
