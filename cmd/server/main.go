package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shoe-assistant-api/internal/config"
	"shoe-assistant-api/internal/handlers"
	"shoe-assistant-api/internal/middleware"
	"shoe-assistant-api/internal/services"
	"shoe-assistant-api/pkg/server"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// maxRequestBytes bounds action group and chat payloads
const maxRequestBytes = 1 << 20

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logger := config.NewLogger(cfg)

	if err := cfg.Validate(config.ComponentServer); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	if err := cfg.Database.EnsureDirectories(); err != nil {
		logger.WithError(err).Fatal("Failed to prepare database directory")
	}

	// Initialize dependencies
	container, err := server.NewContainer(context.Background(), cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize container")
	}
	defer container.Close()

	if smtpMailer, ok := container.Mailer.(*services.SMTPMailer); ok {
		if err := smtpMailer.TestConnection(context.Background()); err != nil {
			logger.WithError(err).Warn("SMTP server not reachable, order confirmations will fail")
		}
	}

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimiter(logger, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	router.Use(middleware.RequestSizeLimit(maxRequestBytes))
	router.Use(middleware.ErrorHandler(logger))

	handlers.SetupRoutes(router, &handlers.RouterConfig{
		OrderService:          container.OrderService,
		RecommendationService: container.RecommendationService,
		RegistrationService:   container.RegistrationService,
		AgentService:          container.AgentService,
		Logger:                logger,
	})

	if container.AgentService == nil {
		logger.Warn("AGENT_ID not set, /agent route disabled")
	}

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	logger.WithField("port", cfg.Port).Info("Server started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
