// File: main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/DC111-ui/hss-storage-platform/config"
	"github.com/DC111-ui/hss-storage-platform/cron"
	"github.com/DC111-ui/hss-storage-platform/database"
	bookingRepo "github.com/DC111-ui/hss-storage-platform/database/repository/booking"
	"github.com/DC111-ui/hss-storage-platform/handlers"
	"github.com/DC111-ui/hss-storage-platform/messaging"
	"github.com/DC111-ui/hss-storage-platform/metrics"
	"github.com/DC111-ui/hss-storage-platform/middleware"
	"github.com/DC111-ui/hss-storage-platform/routes"
	"github.com/DC111-ui/hss-storage-platform/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.StartHealthMonitor(database.DB)

	publisher := messaging.NewPublisherFromConfig()
	defer publisher.Close()

	tokenCache := utils.NewTokenCache()

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(metrics.Middleware())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization", "X-HSS-Role", "X-Request-Id"},
	}))

	// repositories.
	repo := bookingRepo.NewSQLiteRepo(database.DB)
	auditRepo := bookingRepo.NewSQLiteAuditRepo(database.DB)

	// handlers.
	bookingHandler := handlers.NewBookingHandler(repo, auditRepo, publisher, logger)
	routes.RegisterRoutes(router, bookingHandler, tokenCache)

	// background retention sweep.
	cron.InitRetentionWorker(auditRepo)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8081"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
