package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-replenishment-service/config"
	"github.com/fekuna/omnipos-replenishment-service/pkg/logger"

	alertRepoPkg "github.com/fekuna/omnipos-replenishment-service/internal/alert/repository"
	alertUCPkg "github.com/fekuna/omnipos-replenishment-service/internal/alert/usecase"

	"github.com/fekuna/omnipos-replenishment-service/internal/replenishment"
	replH "github.com/fekuna/omnipos-replenishment-service/internal/replenishment/handler"
	replRepoPkg "github.com/fekuna/omnipos-replenishment-service/internal/replenishment/repository"
	replUCPkg "github.com/fekuna/omnipos-replenishment-service/internal/replenishment/usecase"

	"github.com/fekuna/omnipos-replenishment-service/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     false,
		DisableStacktrace: false,
	}

	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Platform API client (shared transport; timeouts live here, not in
	// the orchestrator)
	httpClient := &http.Client{
		Timeout: time.Duration(cfg.Platform.TimeoutSeconds) * time.Second,
	}
	alertRepo := alertRepoPkg.NewHTTPRepository(cfg.Platform.BaseURL, cfg.Platform.APIToken, httpClient)
	replRepo := replRepoPkg.NewHTTPRepository(cfg.Platform.BaseURL, cfg.Platform.APIToken, httpClient)
	appLogger.Info("Platform API client configured", zap.String("base_url", cfg.Platform.BaseURL))

	// 4. Workflow session registry: every session gets its own alert store
	// and orchestrator
	factory := session.Factory(func() replenishment.UseCase {
		alertUC := alertUCPkg.NewAlertUseCase(alertRepo, appLogger)
		return replUCPkg.NewWorkflowUseCase(alertUC, replRepo, appLogger, cfg.Workflow.DefaultHorizonDays)
	})
	registry := session.NewRegistry(factory, time.Duration(cfg.Workflow.SessionTTLMinutes)*time.Minute, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go registry.StartEviction(ctx, time.Duration(cfg.Workflow.EvictionPeriodSeconds)*time.Second)

	// 5. HTTP server
	if cfg.Server.AppEnv != "development" && cfg.Server.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-User-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": registry.Len()})
	})

	workflowHandler := replH.NewWorkflowHandler(registry, appLogger)
	workflowHandler.Register(router.Group("/api/v1"))

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	server := &http.Server{
		Addr:    port,
		Handler: router,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	// Graceful Shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
