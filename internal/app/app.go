package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"edu_analytics_backend/internal/analytics"
	"edu_analytics_backend/internal/config"
	"edu_analytics_backend/internal/controller"
	"edu_analytics_backend/internal/fallback"
	"edu_analytics_backend/internal/repository"
	"edu_analytics_backend/internal/service"
	"edu_analytics_backend/internal/upstream"
	"edu_analytics_backend/pkg/database"
	"edu_analytics_backend/pkg/logger"
	"edu_analytics_backend/pkg/monitoring"
	"edu_analytics_backend/pkg/security"
	"edu_analytics_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
	Log    *zap.Logger

	services        *services
	tracer          *sdktrace.TracerProvider
	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	badge      *repository.BadgeRepository
	preference *repository.PreferenceRepository
}

type services struct {
	storage      *service.StorageService
	analytics    *service.AnalyticsService
	gamification *service.GamificationService
	validation   *service.ValidationService
	preference   *service.PreferenceService
}

type controllers struct {
	analytics    *controller.AnalyticsController
	gamification *controller.GamificationController
	validation   *controller.ValidationController
	preference   *controller.PreferenceController
	health       *controller.HealthController
}

// RegisterConfigCallback adds a hook run after every successful reload.
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig runs the reload hooks against cfg.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.Config = cfg
	a.mu.Unlock()

	for _, cb := range callbacks {
		cb(cfg)
	}
	a.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		badge:      repository.NewBadgeRepository(db),
		preference: repository.NewPreferenceRepository(db),
	}
}

// initSource builds the upstream client, wrapped in the redis read-through
// cache when redis is enabled.
func (a *App) initSource(cfg *config.Config, rdb *redis.Client) upstream.Source {
	client := upstream.NewClient(upstream.ClientConfig{
		BaseURL:     cfg.Upstream.BaseURL,
		Timeout:     cfg.Upstream.Timeout,
		MaxFailures: cfg.Upstream.Breaker.MaxFailures,
		Interval:    cfg.Upstream.Breaker.Interval,
		OpenTimeout: cfg.Upstream.Breaker.OpenTimeout,
		Logger:      a.Log.Named("upstream"),
		Dropped:     monitoring.DroppedRecords,
	})
	if rdb == nil {
		return client
	}
	return upstream.NewCachedSource(client, upstream.NewRedisCache(rdb), cfg.Redis.CacheTTL, a.Log.Named("cache"))
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	fb := fallback.New(a.Log.Named("fallback"), monitoring.FallbackCounter)
	source := a.initSource(cfg, rdb)
	table := analytics.NewThresholdTable(cfg.Thresholds.QuantitativeSubjects, cfg.Thresholds.LanguageSubjects)
	storage := service.NewStorageService(&cfg.Storage, a.Log)

	return &services{
		storage:      storage,
		analytics:    service.NewAnalyticsService(source, fb, table, cfg.Thresholds.DefaultTier),
		gamification: service.NewGamificationService(source, repos.badge, fb, a.Log.Named("gamification")),
		validation:   service.NewValidationService(storage, a.Log.Named("validation")),
		preference:   service.NewPreferenceService(repos.preference, fb),
	}
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	var cache controller.Pinger
	if rdb != nil {
		cache = controller.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}
	return &controllers{
		analytics:    controller.NewAnalyticsController(s.analytics),
		gamification: controller.NewGamificationController(s.gamification),
		validation:   controller.NewValidationController(s.validation),
		preference:   controller.NewPreferenceController(s.preference),
		health:       controller.NewHealthController(db, cache),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// registerReloaders keeps the threshold table in step with the config file.
func (a *App) registerReloaders(s *services) {
	a.RegisterConfigCallback(func(cfg *config.Config) {
		s.analytics.SetThresholds(analytics.NewThresholdTable(
			cfg.Thresholds.QuantitativeSubjects,
			cfg.Thresholds.LanguageSubjects,
		))
	})
}

// NewApp wires storage, upstream access and the HTTP surface. Redis is
// optional; a failed connection only disables the cache.
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	log := logger.Log

	db, err := database.InitDB(&cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis, log)
		if err != nil {
			log.Warn("Redis unavailable, upstream cache disabled", zap.Error(err))
			rdb = nil
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Log:    log,
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, fmt.Errorf("initialize tracing: %w", err)
		}
		app.tracer = tp
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	app.registerReloaders(services)
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	return app, nil
}

// Run serves until ctx is cancelled, then shuts down within five seconds.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var listenErr error
	select {
	case listenErr = <-errCh:
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	defer a.Close(shutdownCtx)

	if listenErr != nil {
		return fmt.Errorf("listen: %w", listenErr)
	}

	a.Log.Info("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	a.Log.Info("Server exiting")
	return nil
}

// Close releases the tracer, redis and database handles.
func (a *App) Close(ctx context.Context) {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			a.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.Log.Sync()
}
