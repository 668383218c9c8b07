package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	reserrors "resbook/internal/resources/errors"
	"resbook/pkg/config"
	"resbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Resources"

type ResourceRepository interface {
	Create(ctx context.Context, resource *model.Resource) error
	FindByID(ctx context.Context, id string) (*model.Resource, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Resource, error)
	Update(ctx context.Context, id string, updates *model.ResourceUpdate) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type mongoResourceRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoResourceRepository(cfg *config.Config) ResourceRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoResourceRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoResourceRepository) Create(ctx context.Context, resource *model.Resource) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	resource.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, resource)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return reserrors.ErrNameTaken
		}
		return fmt.Errorf("failed to create resource: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		resource.ID = oid.Hex()
	}
	return nil
}

func (r *mongoResourceRepository) FindByID(ctx context.Context, id string) (*model.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", reserrors.ErrInvalidID, id)
	}

	var resource model.Resource
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&resource)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find resource: %w", err)
	}

	return &resource, nil
}

func (r *mongoResourceRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	defer cursor.Close(ctx)

	resources := make([]*model.Resource, 0)
	if err := cursor.All(ctx, &resources); err != nil {
		return nil, fmt.Errorf("failed to decode resources: %w", err)
	}
	return resources, nil
}

func (r *mongoResourceRepository) Update(ctx context.Context, id string, updates *model.ResourceUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", reserrors.ErrInvalidID, id)
	}

	set := bson.M{}
	if updates.Name != nil {
		set["name"] = *updates.Name
	}
	if updates.Description != nil {
		set["description"] = *updates.Description
	}
	if len(set) == 0 {
		return nil
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return reserrors.ErrNameTaken
		}
		return fmt.Errorf("failed to update resource: %w", err)
	}
	if result.MatchedCount == 0 {
		return reserrors.ErrNotFound
	}
	return nil
}

func (r *mongoResourceRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", reserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	if result.DeletedCount == 0 {
		return reserrors.ErrNotFound
	}
	return nil
}

func (r *mongoResourceRepository) Exists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("%w: %s", reserrors.ErrInvalidID, id)
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{"_id": objectID})
	if err != nil {
		return false, fmt.Errorf("failed to check resource existence: %w", err)
	}
	return count > 0, nil
}

func (r *mongoResourceRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count resources: %w", err)
	}
	return count, nil
}
