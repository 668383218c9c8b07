package repository

import (
	"context"
	"fmt"
	"time"

	"resbook/pkg/config"
	"resbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const CollectionName = "audit_log"

// AuditRepository persists the booking audit trail. Entries are append-only;
// the unique event_id index makes redelivered messages idempotent.
type AuditRepository interface {
	Insert(ctx context.Context, entry *model.AuditEntry) error
}

type mongoAuditRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAuditRepository(cfg *config.Config) AuditRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAuditRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoAuditRepository) Insert(ctx context.Context, entry *model.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	entry.RecordedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Redelivery of an already-recorded event.
			return nil
		}
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid.Hex()
	}
	return nil
}
