package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/coursemarket-backend/internal/http"
	"github.com/yungbote/coursemarket-backend/internal/observability"
	"github.com/yungbote/coursemarket-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware, metrics *observability.Metrics) *gin.Engine {
	log.Info("Wiring router...")
	return http.NewRouter(http.RouterConfig{
		AuthMiddleware:        middleware.Auth,
		HealthHandler:         handlers.Health,
		RecommendationHandler: handlers.Recommendation,
		Log:                   log,
		Metrics:               metrics,
		RateLimiter:           middleware.RateLimiter,
		AllowedOrigins:        cfg.AllowedOrigins,
		ServiceName:           cfg.Tracing.ServiceName,
	})
}
