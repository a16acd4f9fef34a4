package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"huduma/config"
	"huduma/cron"
	"huduma/database"
	bookingRepoPkg "huduma/database/repository/booking"
	notificationRepoPkg "huduma/database/repository/notification"
	orderRepoPkg "huduma/database/repository/order"
	reviewRepoPkg "huduma/database/repository/review"
	serviceRepoPkg "huduma/database/repository/service"
	userRepoPkg "huduma/database/repository/user"
	"huduma/handlers"
	"huduma/routes"
	"huduma/services/booking"
	"huduma/services/notification"
	"huduma/services/order"
	"huduma/services/payment"
	"huduma/services/review"
	"huduma/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	orderRepo := orderRepoPkg.NewMongoOrderRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()

	// task queue client for scheduled reminders and expiries.
	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
	defer taskClient.Close()

	// services.
	notificationService := notification.NewDefaultNotificationService(notificationRepo, userRepo, logger)

	orderService := &order.DefaultOrderService{
		Orders:   orderRepo,
		Bookings: bookingRepo,
		Services: serviceRepo,
		Users:    userRepo,
		Notifier: notificationService,
		Tasks:    taskClient,
		Logger:   logger,
		TaxRate:  config.AppConfig.TaxRate,
	}

	bookingService := &booking.DefaultBookingService{
		Bookings: bookingRepo,
		Users:    userRepo,
		Notifier: notificationService,
		Logger:   logger,
	}

	reviewService := &review.DefaultReviewService{
		Reviews:  reviewRepo,
		Bookings: bookingRepo,
		Users:    userRepo,
		Logger:   logger,
	}

	paymentService := payment.NewDefaultPaymentService(
		payment.NewStripeGateway(config.AppConfig.StripeKey),
		orderRepo,
		bookingRepo,
		logger,
		config.AppConfig.StripeWebhookSecret,
		config.AppConfig.FrontendURL,
	)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:          handlers.NewAuthHandler(userRepo, logger),
		Services:      handlers.NewServiceHandler(serviceRepo, logger),
		Orders:        handlers.NewOrderHandler(orderService, logger),
		Bookings:      handlers.NewBookingHandler(bookingService, logger),
		Payments:      handlers.NewPaymentHandler(paymentService, logger),
		Reviews:       handlers.NewReviewHandler(reviewService, logger),
		Notifications: handlers.NewNotificationHandler(notificationRepo, logger),
		UserRepo:      userRepo,
	}

	routes.RegisterRoutes(router, handlerBundle, config.AppConfig.MaxRequestsPerMin)

	// Background worker for scheduled booking tasks.
	cron.InitBookingWorker(bookingRepo, bookingService, notificationService)

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
