package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/coursemarket-backend/internal/http/handlers"
	httpMW "github.com/yungbote/coursemarket-backend/internal/http/middleware"
	"github.com/yungbote/coursemarket-backend/internal/observability"
	"github.com/yungbote/coursemarket-backend/internal/platform/logger"
	"github.com/yungbote/coursemarket-backend/internal/platform/ratelimit"
)

type RouterConfig struct {
	AuthMiddleware        *httpMW.AuthMiddleware
	HealthHandler         *httpH.HealthHandler
	RecommendationHandler *httpH.RecommendationHandler

	Log            *logger.Logger
	Metrics        *observability.Metrics
	RateLimiter    ratelimit.Limiter
	AllowedOrigins []string
	// ServiceName labels gin spans; empty disables otelgin.
	ServiceName string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics, "/metrics", "/healthcheck"))
	r.Use(httpMW.CORSWithOrigins(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	rec := cfg.RecommendationHandler

	// Public
	if rec != nil {
		api.GET("/courses/:id/similar", httpMW.RateLimit(cfg.Log, cfg.RateLimiter, cfg.Metrics), rec.SimilarCourses)
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}
		protected.Use(httpMW.RateLimit(cfg.Log, cfg.RateLimiter, cfg.Metrics))

		if rec != nil {
			protected.GET("/recommendations/courses", rec.Courses)
			protected.GET("/recommendations/instructors", rec.Instructors)
			protected.GET("/recommendations/students", rec.Students)
			protected.GET("/matching", rec.Matches)
		}
	}

	return r
}
