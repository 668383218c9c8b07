package repository

import (
	"context"
	"fmt"
	"time"

	bookingerrors "resbook/internal/bookings/errors"
	"resbook/pkg/config"
	"resbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const LockCollectionName = "resource_locks"

// LockRepository serializes booking writes per resource. Acquire inserts a
// document keyed by resource ID; the unique _id makes concurrent acquires
// collide, and the TTL index on expires_at reclaims locks orphaned by a
// crashed request.
type LockRepository interface {
	Acquire(ctx context.Context, resourceID string) error
	Release(ctx context.Context, resourceID string) error
}

type mongoLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoLockRepository(cfg *config.Config) LockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

func (r *mongoLockRepository) Acquire(ctx context.Context, resourceID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC()
	lock := model.ResourceLock{
		ID:        resourceID,
		ExpiresAt: now.Add(r.cfg.LockTTL),
		CreatedAt: now,
	}

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingerrors.ErrLockHeld
		}
		return fmt.Errorf("failed to acquire resource lock: %w", err)
	}
	return nil
}

func (r *mongoLockRepository) Release(ctx context.Context, resourceID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": resourceID}); err != nil {
		return fmt.Errorf("failed to release resource lock: %w", err)
	}
	return nil
}
