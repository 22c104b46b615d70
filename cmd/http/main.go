package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lessonbook-service/internal/app/config"
	"lessonbook-service/internal/app/delivery/http/controllers"
	"lessonbook-service/internal/app/delivery/http/middlewares"
	"lessonbook-service/internal/app/delivery/http/routers"
	"lessonbook-service/internal/app/drivers/database"
	"lessonbook-service/internal/app/drivers/logger"
	"lessonbook-service/internal/app/drivers/messaging"
	"lessonbook-service/internal/app/services/core/availability"
	"lessonbook-service/internal/app/services/core/bookings"
	"lessonbook-service/internal/app/services/core/paymentevents"
	"lessonbook-service/internal/app/services/core/payments"
	"lessonbook-service/internal/app/services/core/rules"
	"lessonbook-service/internal/app/services/shared/calendar"
	"lessonbook-service/internal/app/services/shared/locker"
	"lessonbook-service/internal/app/services/shared/payment_gateway"
	"lessonbook-service/internal/app/services/shared/paymentqueue"
	"lessonbook-service/internal/app/services/shared/ratelimiter"
	redisrepo "lessonbook-service/internal/app/services/shared/redis"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()
	logrusLogger := logger.NewLogrusLogger(internalConfig)

	mongoClient := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitConn := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoClient:    mongoClient,
		Redis:          redisClient,
		RabbitMQ:       rabbitConn,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	stopWorker := bootstrapTheApp(bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrusLogger.Println("Waiting for pending requests that already received by server to be processed..")

	stopWorker()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	_ = mongoClient.Disconnect(shutdownCtx)
	_ = redisClient.Close()
	_ = rabbitConn.Close()

	logrusLogger.Println("Server exiting")
}

func bootstrapTheApp(bootstrap config.Bootstrap) (stopWorker func()) {
	dbName := bootstrap.DriverConfig.MongoDB.DbName

	// Shared services
	redisRepository := redisrepo.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	resourceLimiter := ratelimiter.NewResourceLimiter(redisRepository, bootstrap.Logger)

	queueService, err := paymentqueue.NewService(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.PaymentWorker.BatchSize)
	if err != nil {
		log.Fatalf("Failed to initialize payment queue: %v", err)
	}

	stripeService, err := payment_gateway.NewStripeService(bootstrap.InternalConfig, bootstrap.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize payment gateway: %v", err)
	}

	calendarTokenRepository := calendar.NewCalendarTokenMongoRepository(bootstrap.MongoClient, dbName)
	busyCalendarService := calendar.NewFreeBusyService(bootstrap.InternalConfig, calendarTokenRepository, bootstrap.Logger)

	// Core services
	ruleRepository := rules.NewRuleMongoRepository(bootstrap.MongoClient, dbName)
	ruleUsecase := rules.NewRuleUsecase(ruleRepository, redisRepository, bootstrap.Logger)

	bookingRepository := bookings.NewBookingMongoRepository(bootstrap.MongoClient, dbName)
	bookingUsecase := bookings.NewBookingUsecase(bookingRepository, bootstrap.Logger)

	availabilityUsecase := availability.NewAvailabilityUsecase(
		ruleRepository,
		bookingRepository,
		busyCalendarService,
		redisRepository,
		bootstrap.Logger,
	)

	paymentUsecase := payments.NewPaymentUsecase(bookingRepository, stripeService, queueService, bootstrap.Logger)

	// HTTP surface
	appMiddlewares := &middlewares.Middlewares{
		Log:            bootstrap.Logger,
		InternalConfig: bootstrap.InternalConfig,
	}
	instructorController := controllers.NewInstructorController(bootstrap.Logger, availabilityUsecase, ruleUsecase)
	bookingController := controllers.NewBookingController(bootstrap.Logger, bookingUsecase)
	paymentController := controllers.NewPaymentController(bootstrap.Logger, paymentUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		appMiddlewares,
		instructorController,
		bookingController,
		paymentController,
	)

	// Confirmation drain worker
	worker := paymentevents.NewWorker(
		bootstrap.Logger,
		bootstrap.InternalConfig,
		lockerService,
		queueService,
		bookingUsecase,
		resourceLimiter,
	)
	stop := worker.Start(context.Background())

	logrus.Println("Application bootstrapped")
	return stop
}
