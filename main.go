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

	"go-campzeo-client/src/infrastructure/config"
	"go-campzeo-client/src/infrastructure/di"
	logger "go-campzeo-client/src/infrastructure/logger"
	"go-campzeo-client/src/infrastructure/rest/middlewares"
	"go-campzeo-client/src/infrastructure/rest/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// A missing .env is fine; the environment and config file still apply
	envErr := godotenv.Load()

	loggerInstance := di.GetLogger()
	defer func() {
		_ = loggerInstance.Log.Sync()
	}()
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		loggerInstance.Warn("Couldn't read .env file", zap.Error(envErr))
	}

	cfg, err := config.Load(config.GetEnv("CAMPZEO_CONFIG", "config.yml"))
	if err != nil {
		loggerInstance.Fatal("Invalid configuration", zap.Error(err))
	}

	loggerInstance.Info("Starting go-campzeo-client", zap.String("env", cfg.Env))

	appContext, err := di.SetupDependencies(cfg, loggerInstance)
	if err != nil {
		loggerInstance.Fatal("Error initializing application context", zap.Error(err))
	}

	router := setupRouter(appContext, cfg, loggerInstance)
	server := setupServer(router, cfg.Server.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		loggerInstance.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			loggerInstance.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	loggerInstance.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error("Server shutdown failed", zap.Error(err))
	}
	appContext.Shutdown()
	loggerInstance.Info("Server stopped")
}

func setupRouter(appContext *di.ApplicationContext, cfg config.Config, logger *logger.Logger) *gin.Engine {
	if cfg.Env == "development" {
		logger.SetupGinWithZapLoggerInDevelopment()
	} else {
		logger.SetupGinWithZapLogger()
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware(cfg.Server.CORSOrigins))

	router.Use(middlewares.ErrorHandler())
	router.Use(middlewares.CommonHeaders)

	router.Use(logger.GinZapLogger())

	routes.ApplicationRouter(router, appContext)
	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return cors.Default()
	}
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = origins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Request-ID")
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	return cors.New(corsConfig)
}

func setupServer(router *gin.Engine, port string) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       5 * time.Minute,
		WriteTimeout:      5 * time.Minute,
		MaxHeaderBytes:    1 << 20,
	}
}
