package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotify/config"
	"slotify/cron"
	"slotify/database"
	availabilityRepo "slotify/database/repository/availability"
	bookingRepo "slotify/database/repository/booking"
	catalogRepo "slotify/database/repository/catalog"
	notificationRepo "slotify/database/repository/notification"
	reviewRepo "slotify/database/repository/review"
	"slotify/handlers"
	"slotify/middleware"
	"slotify/routes"
	"slotify/services/booking"
	"slotify/services/catalog"
	"slotify/services/notification"
	"slotify/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookRepo := bookingRepo.NewMongoBookingRepo()
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()
	revRepo := reviewRepo.NewMongoReviewRepo()
	notifRepo := notificationRepo.NewMongoNotificationRepo()
	catRepo := catalogRepo.NewMongoCatalogRepo()

	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelIndex()
	if err := bookRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}
	if err := revRepo.EnsureIndexes(indexCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure review indexes: %v", err)
	}

	// read-through caches over the catalog and availability collaborators.
	cache := utils.NewRedisCache(utils.GetCacheClient())
	cachedCatalog := catalog.NewCachedCatalog(catRepo, cache)
	cachedAvailability := catalog.NewCachedAvailability(availRepo, cache)

	// services.
	notificationService := &notification.DefaultNotificationService{
		Repo:    notifRepo,
		Catalog: catRepo,
		Email:   notification.NewSMTPEmailSender(),
		SMS:     notification.NewHTTPSMSSender(),
		Push:    notification.NewFCMPushSender(),
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()

	dispatcher := &notification.AsynqDispatcher{
		Client:   asynqClient,
		Fallback: &notification.InlineDispatcher{Svc: notificationService},
	}

	resolver := &booking.ConflictResolver{
		Availability: cachedAvailability,
		Bookings:     bookRepo,
		Policy:       config.AppConfig.ConflictPolicy,
	}

	bookingService := booking.NewDefaultBookingService(
		bookRepo,
		revRepo,
		cachedCatalog,
		resolver,
		dispatcher,
	)

	// Start the async worker that drains the notification queue.
	cron.InitNotificationWorker(notificationService)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Booking:      handlers.NewBookingHandler(bookingService, logger),
		Notification: handlers.NewNotificationHandler(notificationService, logger),
		Availability: handlers.NewAvailabilityHandler(cachedAvailability),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
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
