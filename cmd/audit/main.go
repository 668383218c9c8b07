package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"resbook/internal/audit/recorder"
	"resbook/internal/audit/repository"
	"resbook/pkg/config"
	"resbook/pkg/kafka"
	kafka_config "resbook/pkg/kafka/config"
	kafka_middleware "resbook/pkg/kafka/middleware"
)

const ServiceName = "audit"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Fatal("Audit service requires Kafka brokers to be configured")
	}

	auditRepo := repository.NewMongoAuditRepository(cfg)
	rec := recorder.New(auditRepo, cfg.Log)

	consumer, err := kafka.NewConsumer(
		kafka_config.New(cfg.KafkaBrokers),
		cfg.BookingEventsTopic,
		cfg.AuditGroupID,
		rec.Handle,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
	}()

	cfg.Log.Info("Starting audit consumer",
		"topic", cfg.BookingEventsTopic,
		"group_id", cfg.AuditGroupID,
	)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Fatal("Audit consumer failed", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Audit consumer stopped")
}
