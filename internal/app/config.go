package app

import (
	"strings"
	"time"

	dbpkg "github.com/yungbote/coursemarket-backend/internal/data/db"
	"github.com/yungbote/coursemarket-backend/internal/observability"
	"github.com/yungbote/coursemarket-backend/internal/platform/envutil"
	"github.com/yungbote/coursemarket-backend/internal/platform/logger"
)

type Config struct {
	Port           string
	JWTSecretKey   string
	DB             dbpkg.Config
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RateLimit      int
	RateWindow     time.Duration
	WeightsFile    string
	AllowedOrigins []string
	Tracing        observability.TracingConfig
	ShutdownGrace  time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:           envutil.String("PORT", "8080", log),
		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", "defaultsecret", log),
		DB:             dbpkg.ConfigFromEnv(log),
		RedisAddr:      envutil.String("REDIS_ADDR", "", log),
		RedisPassword:  envutil.String("REDIS_PASSWORD", "", log),
		RedisDB:        envutil.Int("REDIS_DB", 0, log),
		RateLimit:      envutil.Int("RATE_LIMIT_PER_MINUTE", 120, log),
		RateWindow:     time.Minute,
		WeightsFile:    envutil.String("MATCHING_WEIGHTS_FILE", "", log),
		AllowedOrigins: splitList(envutil.String("CORS_ALLOWED_ORIGINS", "", log)),
		Tracing:        observability.TracingConfigFromEnv(log),
		ShutdownGrace:  envutil.Duration("SHUTDOWN_GRACE", 15*time.Second, log),
	}
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
