package mongo_adapter

import (
	"context"
	"fmt"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var byDateSaleDesc = bson.D{{Key: "dateSale", Value: -1}}

type PropertyTraceRepository struct {
	collection *mongo.Collection
}

func NewPropertyTraceRepository(collection *mongo.Collection) (*PropertyTraceRepository, error) {
	if collection == nil {
		return nil, fmt.Errorf("mongo collection cannot be nil")
	}
	return &PropertyTraceRepository{collection: collection}, nil
}

func (r *PropertyTraceRepository) find(ctx context.Context, query interface{}) ([]domain.PropertyTrace, error) {
	cursor, err := r.collection.Find(ctx, query, options.Find().SetSort(byDateSaleDesc))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	traces := make([]domain.PropertyTrace, 0)
	for cursor.Next(ctx) {
		var doc traceDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode trace: %w", err)
		}
		traces = append(traces, doc.toDomain())
	}
	return traces, cursor.Err()
}

func (r *PropertyTraceRepository) FindByProperty(ctx context.Context, propertyID string) ([]domain.PropertyTrace, error) {
	traces, err := r.find(ctx, bson.D{{Key: "idProperty", Value: propertyID}})
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to query traces", err, port.Fields{
			"component":   "MongoPropertyTraceRepository",
			"property_id": propertyID,
		})
		return nil, storageError("query traces", err)
	}
	return traces, nil
}

func (r *PropertyTraceRepository) FindAll(ctx context.Context) ([]domain.PropertyTrace, error) {
	traces, err := r.find(ctx, bson.D{})
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to query traces", err, port.Fields{"component": "MongoPropertyTraceRepository"})
		return nil, storageError("query traces", err)
	}
	return traces, nil
}

func (r *PropertyTraceRepository) Create(ctx context.Context, t *domain.PropertyTrace) error {
	if _, err := r.collection.InsertOne(ctx, newTraceDocument(t)); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to insert trace", err, port.Fields{
			"component": "MongoPropertyTraceRepository",
			"trace_id":  t.IDPropertyTrace,
		})
		return storageError("insert trace", err)
	}
	return nil
}

func (r *PropertyTraceRepository) Delete(ctx context.Context, traceID string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.D{{Key: "idPropertyTrace", Value: traceID}})
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to delete trace", err, port.Fields{
			"component": "MongoPropertyTraceRepository",
			"trace_id":  traceID,
		})
		return false, storageError("delete trace", err)
	}
	return res.DeletedCount > 0, nil
}
