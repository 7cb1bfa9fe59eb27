package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/configs"
	v1 "taskboard/internal/api/v1"
	"taskboard/internal/api/v1/handlers"
	"taskboard/internal/config"
	"taskboard/internal/middleware"
	"taskboard/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	cfg := configs.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := logger.InitLoggers(cfg.LogDir); err != nil {
		log.Fatalf("Cannot init loggers: %v", err)
	}
	defer logger.CloseLoggers()
	logger.SystemLogger.Info("Starting application",
		zap.String("time", time.Now().Format(time.RFC3339)),
		zap.String("env", cfg.AppEnv))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := config.NewDependencies(ctx, cfg)
	if err != nil {
		logger.ErrorLogger.Error("Startup failed", zap.Error(err))
		logger.CloseLoggers()
		log.Fatalf("Startup failed: %v", err)
	}
	defer deps.Close()
	logger.SystemLogger.Info("Database Connected", zap.Bool("redis_limiter", deps.RedisClient != nil))

	if !deps.Tokens.Expires() {
		logger.SecurityLogger.Warn("JWT_TTL is not set: issued tokens never expire")
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.AppErrorHandler})

	// Middleware
	app.Use(middleware.ErrorHandler())
	app.Use(middleware.HTTPSRedirect(cfg.IsProduction()))
	app.Use(middleware.SecurityHeaders())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.RateLimit(cfg.RateLimitMax, cfg.RateLimitWindow, deps.LimiterStorage()))

	h := handlers.New(deps.Users, deps.Tokens, deps.Tasks, deps.Labels, deps.DB)
	v1.RegisterRoutes(app, h, deps.Tokens)

	go func() {
		<-ctx.Done()
		logger.SystemLogger.Info("Shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.ErrorLogger.Error("Shutdown failed", zap.Error(err))
		}
	}()

	logger.SystemLogger.Info("Application ready", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
