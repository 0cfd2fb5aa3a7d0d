package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"real-estate-system/internal/adapters/cache"
	token_adapter "real-estate-system/internal/adapters/jwt"
	logger_adapter "real-estate-system/internal/adapters/logger"
	rabbitmq_adapter "real-estate-system/internal/adapters/rabbitmq"
	"real-estate-system/internal/adapters/rest"
	"real-estate-system/internal/configs"
	"real-estate-system/internal/constants"
	"real-estate-system/internal/core/port"
	"real-estate-system/internal/core/usecase"
	fluentlogger "real-estate-system/pkg/fluent_logger"
	"real-estate-system/pkg/rabbitmq/rabbitmq_common"
	"real-estate-system/pkg/rabbitmq/rabbitmq_consumer"
	"real-estate-system/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
)

const shutdownTimeout = 15 * time.Second

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	repos        *repositories
	ownerCache   *cache.OwnerCache
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	connManager    *rabbitmq_common.ConnectionManager
	eventsProducer *rabbitmq_producer.Publisher
	importListener *rabbitmq_adapter.PropertyImportConsumerAdapter
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ ---
	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	app := &App{config: appConfig, fluentClient: fluentClient, logger: appLogger}

	// --- 3. ХРАНИЛИЩЕ ---
	repos, err := newRepositories(context.Background(), appConfig, appLogger.WithFields(port.Fields{"storage_driver": appConfig.Storage}))
	if err != nil {
		app.closeResources()
		return nil, err
	}
	app.repos = repos
	appLogger.Info("Storage adapters initialized.", port.Fields{"storage_driver": appConfig.Storage})

	owners := repos.owners
	if appConfig.OwnerCache.Enabled {
		app.ownerCache = cache.NewOwnerCache(repos.owners, appConfig.OwnerCache.MaxSize, appConfig.OwnerCache.TTL)
		owners = app.ownerCache
		appLogger.Info("Owner cache enabled.", port.Fields{
			"max_size": appConfig.OwnerCache.MaxSize, "ttl": appConfig.OwnerCache.TTL.String(),
		})
	}

	tokenService, err := token_adapter.NewTokenService(token_adapter.Config{
		SigningKey: appConfig.Auth.SecretKey,
		Issuer:     appConfig.Auth.Issuer,
		Audience:   appConfig.Auth.Audience,
		TTL:        appConfig.Auth.TTL,
	})
	if err != nil {
		app.closeResources()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	// --- 4. RABBITMQ (исходящие события) ---
	var eventsPublisher port.PropertyEventPublisherPort
	if appConfig.RabbitMQ.Enabled {
		if eventsPublisher, err = app.initEventsPublisher(baseLogger); err != nil {
			app.closeResources()
			return nil, err
		}
	} else {
		appLogger.Info("RabbitMQ is disabled, property events will not be published.", nil)
	}

	// --- 5. USE CASES ---
	enricher := usecase.NewPropertyEnricher(owners)
	createPropertyUC := usecase.NewCreatePropertyUseCase(repos.properties, eventsPublisher)
	validateTokenUC := usecase.NewValidateTokenUseCase(tokenService)

	handlers := rest.Handlers{
		Properties: rest.NewPropertyHandler(
			usecase.NewListPropertiesUseCase(repos.properties, enricher),
			usecase.NewListPropertiesPaginatedUseCase(repos.properties, enricher),
			usecase.NewCountPropertiesUseCase(repos.properties),
			usecase.NewGetPropertyUseCase(repos.properties, enricher),
			createPropertyUC,
			usecase.NewUpdatePropertyUseCase(repos.properties, eventsPublisher),
			usecase.NewDeletePropertyUseCase(repos.properties, eventsPublisher),
			rest.PaginationConfig{
				DefaultPageSize: appConfig.Pagination.DefaultPageSize,
				MaxPageSize:     appConfig.Pagination.MaxPageSize,
			},
		),
		Owners: rest.NewOwnerHandler(
			usecase.NewListOwnersUseCase(owners),
			usecase.NewGetOwnerUseCase(owners),
			usecase.NewCreateOwnerUseCase(owners),
		),
		Traces: rest.NewTraceHandler(
			usecase.NewGetPropertyTracesUseCase(repos.traces),
			usecase.NewGetAllTracesUseCase(repos.traces),
			usecase.NewCreateTraceUseCase(repos.traces),
			usecase.NewDeleteTraceUseCase(repos.traces),
		),
		Auth: rest.NewAuthHandler(rest.AuthUseCases{
			Register:       usecase.NewRegisterUserUseCase(repos.users, tokenService),
			Login:          usecase.NewLoginUserUseCase(repos.users, tokenService),
			Profile:        usecase.NewGetProfileUseCase(repos.users),
			Preferences:    usecase.NewUpdatePreferencesUseCase(repos.users),
			UpdateProfile:  usecase.NewUpdateProfileUseCase(repos.users),
			AddFavorite:    usecase.NewAddToFavoritesUseCase(repos.users),
			RemoveFavorite: usecase.NewRemoveFromFavoritesUseCase(repos.users),
			Favorites:      usecase.NewGetUserFavoritesUseCase(repos.users, repos.properties, enricher),
		}),
		Health: rest.NewHealthHandler(),
	}
	appLogger.Info("All use cases initialized.", nil)

	// --- 6. ВХОДЯЩИЕ АДАПТЕРЫ ---
	if appConfig.RabbitMQ.Enabled {
		consumerCfg := rabbitmq_consumer.ConsumerConfig{
			QueueName:          constants.QueuePropertyImports,
			DurableQueue:       true,
			ExchangeName:       constants.ExchangePropertyImports,
			ExchangeType:       "topic",
			DurableExchange:    true,
			RoutingKey:         constants.RoutingKeyPropertyImports,
			DeadLetterExchange: constants.PropertyImportsDLX,
			DeadLetterQueue:    constants.PropertyImportsDLQ,

			EnableRetryMechanism: true,
			RetryExchange:        constants.PropertyImportsRetryExchange,
			RetryQueue:           constants.PropertyImportsRetryQueue,
			RetryTTL:             int(appConfig.RabbitMQ.ImportRetryTTL.Milliseconds()),
			MaxRetries:           appConfig.RabbitMQ.ImportMaxRetries,

			PrefetchCount: 4,
			ConsumerTag:   appConfig.AppName + "-property-importer",
		}
		app.importListener, err = rabbitmq_adapter.NewPropertyImportConsumerAdapter(consumerCfg, createPropertyUC, baseLogger, app.connManager)
		if err != nil {
			appLogger.Error("Failed to create property import listener", err, nil)
			app.closeResources()
			return nil, err
		}
		appLogger.Info("Property import listener initialized.", nil)
	}

	app.apiServer = rest.NewServer(rest.ServerConfig{
		Port:           appConfig.Rest.PORT,
		AllowedOrigins: appConfig.Cors.AllowedOrigins,
	}, handlers, validateTokenUC, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return app, nil
}

func (a *App) initEventsPublisher(baseLogger port.LoggerPort) (port.PropertyEventPublisherPort, error) {
	connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
	connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: a.config.RabbitMQ.URL}, connManagerBridge)
	if err != nil {
		a.logger.Error("Failed to create connection manager", err, nil)
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	a.connManager = connManager
	a.logger.Info("RabbitMQ Connection Manager initialized.", nil)

	producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		ExchangeName:             constants.ExchangePropertyEvents,
		ExchangeType:             "topic",
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
	}, connManager)
	if err != nil {
		a.logger.Error("Failed to create event producer", err, nil)
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	a.eventsProducer = producer
	a.logger.Info("RabbitMQ Event Producer initialized.", nil)

	publisher, err := rabbitmq_adapter.NewPropertyEventsPublisher(producer)
	if err != nil {
		return nil, err
	}
	return publisher, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	var wg sync.WaitGroup
	errorsCh := make(chan error, 2)

	a.logger.Info("Application is starting...", nil)

	if a.importListener != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			listenerLogger := a.logger.WithFields(port.Fields{"listener_name": "Property Import Listener"})
			listenerLogger.Info("Starting listener...", nil)

			if err := a.importListener.Start(appCtx); err != nil {
				listenerLogger.Error("Listener stopped with an unexpected error", err, nil)
				errorsCh <- fmt.Errorf("property import listener error: %w", err)
				return
			}
			listenerLogger.Info("Listener stopped gracefully due to context cancellation.", nil)
		}()
	}

	go func() {
		if err := a.apiServer.Start(); err != nil {
			errorsCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", port.Fields{"port": a.config.Rest.PORT})

	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case runErr = <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", runErr, nil)
	}

	a.logger.Info("Shutdown sequence initiated...", nil)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := a.apiServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("Error during API server shutdown", err, nil)
	}

	cancelApp()
	a.logger.Info("Waiting for background processes to finish...", nil)
	wg.Wait()

	a.closeResources()
	return runErr
}

// closeResources освобождает все, что успели создать. Порядок обратный созданию.
func (a *App) closeResources() {
	if a.importListener != nil {
		if err := a.importListener.Close(); err != nil {
			a.logger.Error("Error closing property import listener", err, nil)
		}
	}
	if a.eventsProducer != nil {
		if err := a.eventsProducer.Close(); err != nil {
			a.logger.Error("Error closing event producer", err, nil)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}
	if a.ownerCache != nil {
		a.ownerCache.Stop()
	}
	if a.repos != nil {
		a.repos.close()
	}

	a.logger.Info("Application resources released.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent к этому моменту может быть недоступен
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
