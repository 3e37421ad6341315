// Command api runs the schedule-generation HTTP service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/plastron-io/plastron-api/api/swagger"
	"github.com/plastron-io/plastron-api/internal/catalog"
	"github.com/plastron-io/plastron-api/internal/dto"
	"github.com/plastron-io/plastron-api/internal/handler"
	"github.com/plastron-io/plastron-api/internal/service"
	"github.com/plastron-io/plastron-api/pkg/cache"
	"github.com/plastron-io/plastron-api/pkg/config"
	"github.com/plastron-io/plastron-api/pkg/logger"
	"github.com/plastron-io/plastron-api/pkg/middleware/apikey"
	"github.com/plastron-io/plastron-api/pkg/middleware/cors"
	metricsmw "github.com/plastron-io/plastron-api/pkg/middleware/metrics"
	"github.com/plastron-io/plastron-api/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := dto.RegisterValidations(); err != nil {
		log.Fatal("validator setup failed", zap.Error(err))
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	var redisClient *redis.Client
	if cfg.Catalog.CacheEnabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, catalog caching disabled", zap.Error(err))
			redisClient = nil
		}
	}

	metrics := service.NewMetricsService()

	var source catalog.Source = catalog.NewClient(cfg.Catalog, log)
	if redisClient != nil {
		source = catalog.NewCachedSource(source, redisClient, cfg.Catalog.CacheTTL, log, metrics)
	}

	scheduleService := service.NewScheduleService(source, cfg.Search, log, metrics)
	scheduleHandler := handler.NewScheduleHandler(scheduleService, log)

	checks := map[string]handler.ReadinessCheck{}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	healthHandler := handler.NewHealthHandler(cfg.Env, checks)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.Middleware())
	router.Use(logger.GinMiddleware(log))
	router.Use(cors.New(cfg.CORS.AllowedOrigins))
	if cfg.Metrics.Enabled {
		router.Use(metricsmw.Middleware(metrics))
	}

	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	if cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	if cfg.Env != config.EnvProduction {
		router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := router.Group(cfg.APIPrefix)
	api.Use(apikey.Middleware(cfg.API))
	{
		api.POST("/schedules", scheduleHandler.Generate)
		api.POST("/schedules/visualized", scheduleHandler.Visualize)
		api.POST("/schedules/export", scheduleHandler.Export)
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.Int("port", cfg.Port), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	log.Info("server stopped")
}
