package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirikit/companion-booking/config"
	"github.com/sirikit/companion-booking/internal/handler"
	"github.com/sirikit/companion-booking/internal/metrics"
	"github.com/sirikit/companion-booking/internal/middleware"
	"github.com/sirikit/companion-booking/internal/processor"
	"github.com/sirikit/companion-booking/internal/repository"
	"github.com/sirikit/companion-booking/internal/service"
	"github.com/sirikit/companion-booking/pkg/database"
	"github.com/sirikit/companion-booking/pkg/obs"
	"github.com/sirikit/companion-booking/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	if cfg.OTLPEndpoint != "" {
		shutdown := obs.InitTracer("companion-booking", cfg.OTLPEndpoint, cfg.Env)
		defer func() { _ = shutdown(context.Background()) }()
	}

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ: booking/payment state changes fan out to notifier and chat
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	proc, err := processor.NewOmiseProcessor(cfg.OmisePublicKey, cfg.OmiseSecretKey, cfg.GatewayTimeout)
	if err != nil {
		log.Fatalf("failed to init payment processor: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	companionRepo := repository.NewCompanionRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Services
	bookingSvc := service.NewBookingService(bookingRepo, companionRepo, publisher)
	paymentSvc := service.NewPaymentService(bookingRepo, userRepo, paymentRepo, proc, publisher)
	reviewSvc := service.NewReviewService(reviewRepo, bookingRepo, companionRepo)
	companionSvc := service.NewCompanionService(companionRepo, db)

	metrics.Register()

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "companion-booking"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1", middleware.JWTAuth(cfg.JWTSecret))
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(api)
	handler.NewPaymentHandler(paymentSvc).RegisterRoutes(api)
	handler.NewReviewHandler(reviewSvc).RegisterRoutes(api)
	handler.NewCompanionHandler(companionSvc).RegisterRoutes(api)

	log.Printf("Companion Booking starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
