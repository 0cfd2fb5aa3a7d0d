package mongo_adapter

import (
	"context"
	"errors"
	"fmt"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OwnerRepository struct {
	collection *mongo.Collection
}

func NewOwnerRepository(collection *mongo.Collection) (*OwnerRepository, error) {
	if collection == nil {
		return nil, fmt.Errorf("mongo collection cannot be nil")
	}
	return &OwnerRepository{collection: collection}, nil
}

func (r *OwnerRepository) find(ctx context.Context, query interface{}, opts *options.FindOptions) ([]domain.Owner, error) {
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	owners := make([]domain.Owner, 0)
	for cursor.Next(ctx) {
		var doc ownerDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode owner: %w", err)
		}
		owners = append(owners, doc.toDomain())
	}
	return owners, cursor.Err()
}

func (r *OwnerRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Owner, error) {
	if len(ids) == 0 {
		return []domain.Owner{}, nil
	}
	owners, err := r.find(ctx, bson.D{{Key: "idOwner", Value: bson.D{{Key: "$in", Value: ids}}}}, options.Find())
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to query owners by ids", err, port.Fields{
			"component": "MongoOwnerRepository",
			"ids_count": len(ids),
		})
		return nil, storageError("query owners by ids", err)
	}
	return owners, nil
}

func (r *OwnerRepository) FindByID(ctx context.Context, id string) (*domain.Owner, error) {
	var doc ownerDocument
	if err := r.collection.FindOne(ctx, bson.D{{Key: "idOwner", Value: id}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		contextkeys.LoggerFromContext(ctx).Error("Failed to find owner", err, port.Fields{
			"component": "MongoOwnerRepository",
			"owner_id":  id,
		})
		return nil, storageError("find owner by id", err)
	}
	o := doc.toDomain()
	return &o, nil
}

func (r *OwnerRepository) FindAll(ctx context.Context) ([]domain.Owner, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "idOwner", Value: 1}})
	owners, err := r.find(ctx, bson.D{}, opts)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to query owners", err, port.Fields{"component": "MongoOwnerRepository"})
		return nil, storageError("query owners", err)
	}
	return owners, nil
}

func (r *OwnerRepository) Create(ctx context.Context, o *domain.Owner) error {
	if _, err := r.collection.InsertOne(ctx, newOwnerDocument(o)); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to insert owner", err, port.Fields{
			"component": "MongoOwnerRepository",
			"owner_id":  o.IDOwner,
		})
		return storageError("insert owner", err)
	}
	return nil
}
