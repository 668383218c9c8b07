package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"resbook/internal/migrations/mongo/validators"
	"resbook/pkg/config"
	"resbook/pkg/model"
)

var (
	UsersIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	ResourcesIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	BookingsIndexes = []mongo.IndexModel{
		// Conflict scans filter by resource and interval bounds.
		{Keys: bson.D{
			{Key: "resource_id", Value: 1},
			{Key: "start_time", Value: 1},
			{Key: "end_time", Value: 1},
		}},
		// "My bookings" listings sort by start time descending.
		{Keys: bson.D{
			{Key: "owner_id", Value: 1},
			{Key: "start_time", Value: -1},
		}},
	}

	// expireAfterSeconds 0 deletes each lock at its own expires_at, so
	// a crashed request cannot block a resource past the lock TTL.
	ResourceLocksIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	AuditLogIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{
			{Key: "booking_id", Value: 1},
			{Key: "occurred_at", Value: -1},
		}},
	}
)

func RunMigration(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	fmt.Printf("Running Mongo migrations on database: %s\n", dbName)

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		"Users": {
			Indexes:   UsersIndexes,
			Validator: validators.UserValidator,
		},
		"Resources": {
			Indexes:   ResourcesIndexes,
			Validator: validators.ResourceValidator,
		},
		"Bookings": {
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
		"resource_locks": {
			Indexes: ResourceLocksIndexes,
		},
		"audit_log": {
			Indexes: AuditLogIndexes,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	fmt.Println("All migrations applied successfully.")
	return nil
}

// SeedAdmin creates the bootstrap ADMIN account when it does not exist.
// A blank admin password skips seeding entirely.
func SeedAdmin(ctx context.Context, client *mongo.Client, cfg *config.Config) error {
	if cfg.AdminPassword == "" {
		cfg.Log.Info("Admin seed skipped, no admin password configured")
		return nil
	}

	coll := client.Database(cfg.MongoDatabaseName).Collection("Users")

	err := coll.FindOne(ctx, bson.M{"email": cfg.AdminEmail}).Err()
	if err == nil {
		cfg.Log.Info("Admin account already exists", "email", cfg.AdminEmail)
		return nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("failed to check for admin account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := model.User{
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		FirstName:    "Admin",
		Roles:        []string{model.RoleAdmin, model.RoleUser},
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}

	if _, err := coll.InsertOne(ctx, admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			cfg.Log.Info("Admin account already exists", "email", cfg.AdminEmail)
			return nil
		}
		return fmt.Errorf("failed to seed admin account: %w", err)
	}

	cfg.Log.Info("Admin account seeded", "email", cfg.AdminEmail)
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("Creating collection: %s\n", name)
		opts := options.CreateCollection()
		if validator != nil {
			opts = opts.SetValidator(validator)
		}
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	if validator != nil {
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			fmt.Printf("Warning: failed updating validator for %s: %v\n", name, err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	if len(models) == 0 {
		return nil
	}
	coll := db.Collection(name)
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	fmt.Printf("Ensured indexes for %s\n", name)
	return nil
}
