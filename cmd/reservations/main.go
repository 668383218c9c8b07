package main

import (
	authhandler "resbook/internal/auth/handler"
	authrepository "resbook/internal/auth/repository"
	authservice "resbook/internal/auth/service"
	"resbook/internal/auth/token"
	authvalidator "resbook/internal/auth/validator"
	"resbook/internal/bookings/events"
	bookinghandler "resbook/internal/bookings/handler"
	bookingrepository "resbook/internal/bookings/repository"
	bookingservice "resbook/internal/bookings/service"
	bookingvalidator "resbook/internal/bookings/validator"
	resourcehandler "resbook/internal/resources/handler"
	resourcerepository "resbook/internal/resources/repository"
	resourceservice "resbook/internal/resources/service"
	resourcevalidator "resbook/internal/resources/validator"
	"resbook/pkg/app"
	"resbook/pkg/clock"
	"resbook/pkg/config"
	dbmongo "resbook/pkg/db/mongo"
	"resbook/pkg/kafka"
	kafka_config "resbook/pkg/kafka/config"
	kafka_middleware "resbook/pkg/kafka/middleware"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Reservations service")

	tokenManager := token.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	publisher := initPublisher(cfg)

	authService := initAuthService(cfg, tokenManager)
	bookingRepo := bookingrepository.NewMongoBookingRepository(cfg)
	resourceRepo := resourcerepository.NewMongoResourceRepository(cfg)
	resourceService := initResourceService(cfg, resourceRepo, bookingRepo)
	bookingService := initBookingService(cfg, bookingRepo, resourceRepo, publisher)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		authhandler.NewAuthHandler(authService, cfg.Log),
		resourcehandler.NewResourceHandler(resourceService, tokenManager, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, tokenManager, cfg.Log),
	)
	serverApp.Run()
}

func initAuthService(cfg *config.Config, tokenManager *token.Manager) authservice.AuthService {
	userRepo := authrepository.NewMongoUserRepository(cfg)
	svc := authservice.NewAuthService(
		userRepo,
		tokenManager,
		authvalidator.NewAuthValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Auth service initialized", "database", cfg.MongoDatabaseName)
	return svc
}

func initResourceService(
	cfg *config.Config,
	resourceRepo resourcerepository.ResourceRepository,
	bookingRepo bookingrepository.BookingRepository,
) resourceservice.ResourceService {
	svc := resourceservice.NewResourceService(
		resourceRepo,
		bookingRepo,
		resourcevalidator.NewResourceValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Resource service initialized", "database", cfg.MongoDatabaseName)
	return svc
}

func initBookingService(
	cfg *config.Config,
	bookingRepo bookingrepository.BookingRepository,
	resourceRepo resourcerepository.ResourceRepository,
	publisher events.EventPublisher,
) bookingservice.BookingService {
	svc := bookingservice.NewBookingService(
		bookingRepo,
		bookingrepository.NewMongoLockRepository(cfg),
		resourceRepo,
		dbmongo.NewTransactionManager(cfg.Client.Mongo),
		bookingservice.NewAuthorizer(),
		bookingvalidator.NewBookingValidator(cfg.Log),
		publisher,
		clock.System(),
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return svc
}

func initPublisher(cfg *config.Config) events.EventPublisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return events.NewNopPublisher()
	}

	producer, err := kafka.NewProducer(kafka_config.New(cfg.KafkaBrokers), cfg.BookingEventsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))

	cfg.Log.Info("Kafka producer initialized", "topic", cfg.BookingEventsTopic)
	return events.NewKafkaPublisher(producer, cfg.Log)
}
