// File: velora/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"velora/config"
	"velora/cron"
	"velora/database"
	bookingRepo "velora/database/repository/booking"
	holdRepo "velora/database/repository/hold"
	professionalRepo "velora/database/repository/professional"
	"velora/handlers"
	"velora/routes"
	"velora/services/booking"
	"velora/services/notification"
	"velora/services/pricing"
	"velora/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	bookRepo := bookingRepo.NewMongoBookingRepo()
	holds := holdRepo.NewMongoHoldRepo()
	profRepo := professionalRepo.NewMongoProfessionalRepo()

	// services.
	queueOpt := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	notifier := notification.NewAsynqNotificationService(queueOpt)
	defer notifier.Close()

	settingsCache := professionalRepo.NewCachedSettingsSource(
		profRepo,
		utils.GetCacheClient(),
		time.Duration(config.AppConfig.SettingsCacheTTLHours)*time.Hour,
	)

	bookingService := &booking.DefaultBookingService{
		Repo:          bookRepo,
		Holds:         &booking.HoldManager{Repo: holds},
		Professionals: profRepo,
		Notifier:      notifier,
		HoldTTL:       time.Duration(config.AppConfig.HoldTTLMinutes) * time.Minute,
	}
	pricingService := &pricing.DefaultQuoteService{
		Professionals: profRepo,
		Settings:      settingsCache,
	}

	handlers.BookingService = bookingService
	handlers.PricingService = pricingService
	handlers.Professionals = profRepo

	// Background workers.
	cron.InitEventWorker()
	cron.StartHoldSweeper(holds, time.Minute)
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Register routes.
	routes.RegisterRoutes(router)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Starting server on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("server error: %v", err)
		}
	}()

	// Wait for an interrupt and shut down gracefully.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Sugar().Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("forced shutdown: %v", err)
	}
}
