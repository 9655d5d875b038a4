package app

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	dbpkg "github.com/yungbote/coursemarket-backend/internal/data/db"
	"github.com/yungbote/coursemarket-backend/internal/http"
	"github.com/yungbote/coursemarket-backend/internal/observability"
	"github.com/yungbote/coursemarket-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Server   *http.Server
	Cfg      Config
	Repos    Repos
	Services Services
	Clients  Clients
	Metrics  *observability.Metrics

	store        *dbpkg.Service
	otelShutdown func(context.Context) error
	ctx          context.Context
	cancel       context.CancelFunc
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	ctx, cancel := context.WithCancel(context.Background())
	fail := func(err error) (*App, error) {
		cancel()
		log.Sync()
		return nil, err
	}

	otelShutdown, err := observability.InitTracing(ctx, log, cfg.Tracing)
	if err != nil {
		log.Warn("tracing disabled", "error", err)
	}

	var metrics *observability.Metrics
	if observability.Enabled() {
		metrics = observability.Init(log)
	}

	store, err := dbpkg.Open(log, cfg.DB)
	if err != nil {
		return fail(fmt.Errorf("init database: %w", err))
	}
	if err := dbpkg.AutoMigrateAll(store.DB()); err != nil {
		_ = store.Close()
		return fail(fmt.Errorf("automigrate: %w", err))
	}
	theDB := store.DB()

	clientset, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = store.Close()
		return fail(err)
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(log, cfg, reposet, metrics)
	handlerset := wireHandlers(log, serviceset)
	middleware := wireMiddleware(ctx, log, cfg, clientset, serviceset)
	router := wireRouter(log, cfg, handlerset, middleware, metrics)

	return &App{
		Log:          log,
		DB:           theDB,
		Router:       router,
		Server:       http.NewServer(net.JoinHostPort("", cfg.Port), router),
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Clients:      clientset,
		Metrics:      metrics,
		store:        store,
		otelShutdown: otelShutdown,
		ctx:          ctx,
		cancel:       cancel,
	}, nil
}

// Start launches background collectors. They stop when Close is called.
func (a *App) Start() {
	if a == nil || a.Metrics == nil {
		return
	}
	a.Metrics.StartDBCollector(a.ctx, a.Log, a.DB)
	if a.Clients.Redis != nil {
		a.Metrics.StartRedisCollector(a.ctx, a.Log, a.Clients.Redis)
	}
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Server listening", "addr", a.Server.Addr())
	return a.Server.Run()
}

// Close drains the HTTP server within ctx, then releases clients, tracing and
// the database.
func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			a.Log.Warn("http shutdown", "error", err)
		}
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.Clients.Close()
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown", "error", err)
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.Log.Warn("database close", "error", err)
		}
	}
	a.Log.Sync()
}
