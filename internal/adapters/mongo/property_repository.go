package mongo_adapter

import (
	"context"
	"errors"
	"fmt"
	"math"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Порядок вставки: ObjectID монотонно растет
var insertionOrder = bson.D{{Key: "_id", Value: 1}}

// PropertyRepository - реализация PropertyRepositoryPort для MongoDB.
type PropertyRepository struct {
	collection *mongo.Collection
}

func NewPropertyRepository(collection *mongo.Collection) (*PropertyRepository, error) {
	if collection == nil {
		return nil, fmt.Errorf("mongo collection cannot be nil")
	}
	return &PropertyRepository{collection: collection}, nil
}

func decodeProperties(ctx context.Context, cursor *mongo.Cursor) ([]domain.Property, error) {
	defer cursor.Close(ctx)

	properties := make([]domain.Property, 0)
	for cursor.Next(ctx) {
		var doc propertyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode property: %w", err)
		}
		properties = append(properties, doc.toDomain())
	}
	return properties, cursor.Err()
}

func (r *PropertyRepository) find(ctx context.Context, method string, query interface{}, opts *options.FindOptions) ([]domain.Property, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "MongoPropertyRepository",
		"method":    method,
	})

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		repoLogger.Error("Failed to query properties", err, nil)
		return nil, storageError("query properties", err)
	}

	properties, err := decodeProperties(ctx, cursor)
	if err != nil {
		repoLogger.Error("Failed to read properties", err, nil)
		return nil, storageError("read properties", err)
	}
	return properties, nil
}

func (r *PropertyRepository) FindAll(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	return r.find(ctx, "FindAll", buildFilter(filter), options.Find().SetSort(insertionOrder))
}

func (r *PropertyRepository) FindPage(ctx context.Context, filter domain.PropertyFilter, page domain.PageRequest) ([]domain.Property, error) {
	offset := page.Offset()
	if offset == math.MaxInt64 {
		return []domain.Property{}, nil
	}
	opts := options.Find().
		SetSort(insertionOrder).
		SetSkip(offset).
		SetLimit(int64(page.PageSize))
	return r.find(ctx, "FindPage", buildFilter(filter), opts)
}

func (r *PropertyRepository) Count(ctx context.Context, filter domain.PropertyFilter) (int64, error) {
	total, err := r.collection.CountDocuments(ctx, buildFilter(filter))
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to count properties", err, port.Fields{
			"component": "MongoPropertyRepository",
		})
		return 0, storageError("count properties", err)
	}
	return total, nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	var doc propertyDocument
	err := r.collection.FindOne(ctx, bson.D{{Key: "idProperty", Value: id}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		contextkeys.LoggerFromContext(ctx).Error("Failed to find property", err, port.Fields{
			"component":   "MongoPropertyRepository",
			"property_id": id,
		})
		return nil, storageError("find property by id", err)
	}
	p := doc.toDomain()
	return &p, nil
}

func (r *PropertyRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Property, error) {
	if len(ids) == 0 {
		return []domain.Property{}, nil
	}
	query := bson.D{{Key: "idProperty", Value: bson.D{{Key: "$in", Value: ids}}}}
	return r.find(ctx, "FindByIDs", query, options.Find())
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	if _, err := r.collection.InsertOne(ctx, newPropertyDocument(p)); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to insert property", err, port.Fields{
			"component":   "MongoPropertyRepository",
			"property_id": p.IDProperty,
		})
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("property %s already exists: %w", p.IDProperty, err)
		}
		return storageError("insert property", err)
	}
	return nil
}

// Replace считает успехом любое совпадение, даже если данные не изменились.
func (r *PropertyRepository) Replace(ctx context.Context, p *domain.Property) (bool, error) {
	res, err := r.collection.ReplaceOne(ctx, bson.D{{Key: "idProperty", Value: p.IDProperty}}, newPropertyDocument(p))
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to replace property", err, port.Fields{
			"component":   "MongoPropertyRepository",
			"property_id": p.IDProperty,
		})
		return false, storageError("replace property", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.D{{Key: "idProperty", Value: id}})
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to delete property", err, port.Fields{
			"component":   "MongoPropertyRepository",
			"property_id": id,
		})
		return false, storageError("delete property", err)
	}
	return res.DeletedCount > 0, nil
}
