package app

import (
	"github.com/yungbote/coursemarket-backend/internal/matching"
	"github.com/yungbote/coursemarket-backend/internal/observability"
	"github.com/yungbote/coursemarket-backend/internal/platform/logger"
	"github.com/yungbote/coursemarket-backend/internal/services"
)

type Services struct {
	Auth           services.AuthService
	Catalog        *services.Catalog
	Engine         *matching.Engine
	Recommendation services.RecommendationService
}

func wireServices(log *logger.Logger, cfg Config, reposet Repos, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	weights := matching.DefaultWeights()
	if cfg.WeightsFile != "" {
		w, err := matching.LoadWeights(cfg.WeightsFile)
		if err != nil {
			log.Warn("matching weights file rejected, using defaults", "path", cfg.WeightsFile, "error", err)
		} else {
			log.Info("matching weights loaded", "path", cfg.WeightsFile)
		}
		weights = w
	}

	catalog := services.NewCatalog(log, reposet.User, reposet.Course, reposet.Enrollment)
	engine := matching.NewEngine(catalog, matching.WithWeights(weights))
	ew := engine.Weights()
	log.Info("matching engine ready",
		"course_tag", ew.CourseTag,
		"course_instructor_skill", ew.CourseInstructorSkill,
		"course_popularity", ew.CoursePopularity,
		"instructor_skill", ew.InstructorSkill,
		"instructor_volume", ew.InstructorVolume,
	)

	return Services{
		Auth:           services.NewAuthService(log, cfg.JWTSecretKey),
		Catalog:        catalog,
		Engine:         engine,
		Recommendation: services.NewRecommendationService(log, engine, metrics),
	}
}
