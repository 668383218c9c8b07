package main

import (
	"context"
	"time"

	mongoMigration "resbook/internal/migrations/mongo"
	"resbook/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Mongo migration job")
	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
	if err := mongoMigration.SeedAdmin(ctx, cfg.Client.Mongo, cfg); err != nil {
		cfg.Log.Fatal("Admin seed failed", "error", err)
	}

	cfg.Log.Info("Migration completed successfully")
}
