package app

import (
	httpH "github.com/yungbote/coursemarket-backend/internal/http/handlers"
	"github.com/yungbote/coursemarket-backend/internal/platform/logger"
)

type Handlers struct {
	Health         *httpH.HealthHandler
	Recommendation *httpH.RecommendationHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:         httpH.NewHealthHandler(),
		Recommendation: httpH.NewRecommendationHandler(log, services.Recommendation),
	}
}
