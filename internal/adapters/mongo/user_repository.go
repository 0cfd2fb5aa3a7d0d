package mongo_adapter

import (
	"context"
	"errors"
	"fmt"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository - реализация UserRepositoryPort для MongoDB.
// Избранное хранится массивом favoriteProperties в документе пользователя.
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(collection *mongo.Collection) (*UserRepository, error) {
	if collection == nil {
		return nil, fmt.Errorf("mongo collection cannot be nil")
	}
	return &UserRepository{collection: collection}, nil
}

func activeUser(key string, value interface{}) bson.D {
	return bson.D{{Key: key, Value: value}, {Key: "isActive", Value: true}}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "MongoUserRepository",
		"method":    "Create",
		"user_id":   user.ID.String(),
	})

	if _, err := r.collection.InsertOne(ctx, newUserDocument(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			repoLogger.Warn("User already exists", port.Fields{"error": err.Error()})
			// Имя нарушенного индекса есть в тексте ошибки E11000
			if strings.Contains(err.Error(), emailIndexName) {
				return domain.ErrEmailInUse
			}
			return domain.ErrUsernameInUse
		}
		repoLogger.Error("Failed to create user", err, nil)
		return storageError("create user", err)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, method string, query bson.D) (*domain.User, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "MongoUserRepository",
		"method":    method,
	})

	var doc userDocument
	if err := r.collection.FindOne(ctx, query).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		repoLogger.Error("Failed to find user", err, nil)
		return nil, storageError("find user", err)
	}

	user, err := doc.toDomain()
	if err != nil {
		repoLogger.Error("Stored user has invalid id", err, port.Fields{"id_user": doc.IDUser})
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.findOne(ctx, "FindByID", activeUser("idUser", id.String()))
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "FindByUsername", activeUser("username", username))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "FindByEmail", activeUser("email", email))
}

// update возвращает true, если активный пользователь найден.
// Идемпотентные $addToSet/$pull не меняют документ, поэтому смотрим на MatchedCount.
func (r *UserRepository) update(ctx context.Context, method string, id uuid.UUID, change bson.D) (bool, error) {
	res, err := r.collection.UpdateOne(ctx, activeUser("idUser", id.String()), change)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to update user", err, port.Fields{
			"component": "MongoUserRepository",
			"method":    method,
			"user_id":   id.String(),
		})
		return false, storageError("update user", err)
	}
	return res.MatchedCount > 0, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.update(ctx, "UpdateLastLogin", id, bson.D{{Key: "$set", Value: bson.D{{Key: "lastLogin", Value: at}}}})
	return err
}

func (r *UserRepository) UpdatePreferences(ctx context.Context, id uuid.UUID, prefs domain.UserPreferences) (bool, error) {
	change := bson.D{{Key: "$set", Value: bson.D{{Key: "preferences", Value: preferencesDocument(prefs)}}}}
	return r.update(ctx, "UpdatePreferences", id, change)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (bool, error) {
	change := bson.D{{Key: "$set", Value: bson.D{
		{Key: "firstName", Value: update.FirstName},
		{Key: "lastName", Value: update.LastName},
		{Key: "avatar", Value: update.Avatar},
	}}}
	return r.update(ctx, "UpdateProfile", id, change)
}

func (r *UserRepository) AddFavorite(ctx context.Context, id uuid.UUID, propertyID string) (bool, error) {
	change := bson.D{{Key: "$addToSet", Value: bson.D{{Key: "favoriteProperties", Value: propertyID}}}}
	return r.update(ctx, "AddFavorite", id, change)
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, id uuid.UUID, propertyID string) (bool, error) {
	change := bson.D{{Key: "$pull", Value: bson.D{{Key: "favoriteProperties", Value: propertyID}}}}
	return r.update(ctx, "RemoveFavorite", id, change)
}
