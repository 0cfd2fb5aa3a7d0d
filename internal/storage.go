package internal

import (
	"context"
	"fmt"
	"real-estate-system/internal/adapters/memory"
	mongo_adapter "real-estate-system/internal/adapters/mongo"
	postgres_adapter "real-estate-system/internal/adapters/postgres"
	"real-estate-system/internal/configs"
	"real-estate-system/internal/core/port"
	"real-estate-system/pkg/mongodb"
	"real-estate-system/pkg/postgres"
)

// repositories - выходные адаптеры хранилища для выбранного STORAGE_DRIVER.
type repositories struct {
	properties port.PropertyRepositoryPort
	owners     port.OwnerRepositoryPort
	traces     port.PropertyTraceRepositoryPort
	users      port.UserRepositoryPort

	close func()
}

func newRepositories(ctx context.Context, cfg *configs.AppConfig, logger port.LoggerPort) (*repositories, error) {
	switch cfg.Storage {
	case configs.StorageDriverPostgres:
		return newPostgresRepositories(ctx, cfg.Database, logger)
	case configs.StorageDriverMongo:
		return newMongoRepositories(ctx, cfg.Mongo, logger)
	case configs.StorageDriverMemory:
		logger.Warn("Using in-memory storage, data will be lost on restart", nil)
		return &repositories{
			properties: memory.NewPropertyRepository(),
			owners:     memory.NewOwnerRepository(),
			traces:     memory.NewPropertyTraceRepository(),
			users:      memory.NewUserRepository(),
			close:      func() {},
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage)
	}
}

func newPostgresRepositories(ctx context.Context, cfg configs.DBconfig, logger port.LoggerPort) (*repositories, error) {
	if cfg.AutoMigrate {
		if err := postgres.Migrate(cfg.URL, postgres_adapter.Migrations, postgres_adapter.MigrationsDir); err != nil {
			logger.Error("Failed to apply database migrations", err, nil)
			return nil, fmt.Errorf("failed to apply database migrations: %w", err)
		}
		logger.Info("Database migrations applied.", nil)
	}

	dbPool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: cfg.URL, MaxConns: int32(cfg.MaxConns)})
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	logger.Info("Successfully connected to PostgreSQL pool!", nil)

	properties, err := postgres_adapter.NewPropertyRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres property repository: %w", err)
	}
	owners, err := postgres_adapter.NewOwnerRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres owner repository: %w", err)
	}
	traces, err := postgres_adapter.NewPropertyTraceRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres trace repository: %w", err)
	}
	users, err := postgres_adapter.NewUserRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create postgres user repository: %w", err)
	}

	return &repositories{
		properties: properties,
		owners:     owners,
		traces:     traces,
		users:      users,
		close: func() {
			dbPool.Close()
			logger.Info("PostgreSQL pool closed.", nil)
		},
	}, nil
}

func newMongoRepositories(ctx context.Context, cfg configs.MongoConfig, logger port.LoggerPort) (*repositories, error) {
	client, db, err := mongodb.NewClient(ctx, mongodb.Config{
		URI:            cfg.URI,
		Database:       cfg.Database,
		ConnectTimeout: cfg.ConnectTimeout,
	})
	if err != nil {
		logger.Error("Failed to connect to MongoDB", err, nil)
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	logger.Info("Successfully connected to MongoDB!", port.Fields{"database": cfg.Database})

	disconnect := func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error("Error disconnecting from MongoDB", err, nil)
			return
		}
		logger.Info("MongoDB client disconnected.", nil)
	}

	collections := mongo_adapter.Collections{
		Properties: db.Collection("Properties"),
		Owners:     db.Collection("Owners"),
		Traces:     db.Collection("propertyTraces"),
		Users:      db.Collection("users"),
	}
	if err := mongo_adapter.EnsureIndexes(ctx, collections); err != nil {
		disconnect()
		return nil, fmt.Errorf("failed to create MongoDB indexes: %w", err)
	}

	properties, err := mongo_adapter.NewPropertyRepository(collections.Properties)
	if err != nil {
		disconnect()
		return nil, err
	}
	owners, err := mongo_adapter.NewOwnerRepository(collections.Owners)
	if err != nil {
		disconnect()
		return nil, err
	}
	traces, err := mongo_adapter.NewPropertyTraceRepository(collections.Traces)
	if err != nil {
		disconnect()
		return nil, err
	}
	users, err := mongo_adapter.NewUserRepository(collections.Users)
	if err != nil {
		disconnect()
		return nil, err
	}

	return &repositories{
		properties: properties,
		owners:     owners,
		traces:     traces,
		users:      users,
		close:      disconnect,
	}, nil
}
