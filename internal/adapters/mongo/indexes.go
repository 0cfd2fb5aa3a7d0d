package mongo_adapter

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const emailIndexName = "email_unique"

// Collections - коллекции, с которыми работает сервис.
type Collections struct {
	Properties *mongo.Collection
	Owners     *mongo.Collection
	Traces     *mongo.Collection
	Users      *mongo.Collection
}

// EnsureIndexes создает индексы, если их еще нет. CreateMany идемпотентен.
func EnsureIndexes(ctx context.Context, c Collections) error {
	specs := []struct {
		collection *mongo.Collection
		models     []mongo.IndexModel
	}{
		{c.Properties, []mongo.IndexModel{
			{Keys: bson.D{{Key: "idProperty", Value: 1}}, Options: options.Index().SetUnique(true).SetName("idProperty_unique")},
			{Keys: bson.D{{Key: "price", Value: 1}}, Options: options.Index().SetName("price")},
		}},
		{c.Owners, []mongo.IndexModel{
			{Keys: bson.D{{Key: "idOwner", Value: 1}}, Options: options.Index().SetUnique(true).SetName("idOwner_unique")},
		}},
		{c.Traces, []mongo.IndexModel{
			{Keys: bson.D{{Key: "idProperty", Value: 1}, {Key: "dateSale", Value: -1}}, Options: options.Index().SetName("idProperty_dateSale")},
		}},
		{c.Users, []mongo.IndexModel{
			{Keys: bson.D{{Key: "idUser", Value: 1}}, Options: options.Index().SetUnique(true).SetName("idUser_unique")},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("username_unique")},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName(emailIndexName)},
		}},
	}

	for _, s := range specs {
		if s.collection == nil {
			continue
		}
		if _, err := s.collection.Indexes().CreateMany(ctx, s.models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", s.collection.Name(), err)
		}
	}
	return nil
}
