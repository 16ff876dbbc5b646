package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	logger_adapter "rentwise/internal/adapters/logger"
	postgres_adapter "rentwise/internal/adapters/postgres"
	rabbitmq_adapter "rentwise/internal/adapters/rabbitmq"
	"rentwise/internal/adapters/rest"
	"rentwise/internal/configs"
	"rentwise/internal/constants"
	"rentwise/internal/contextkeys"
	"rentwise/internal/core/port"
	"rentwise/internal/core/usecase"
	fluentlogger "rentwise/pkg/fluent_logger"
	"rentwise/pkg/postgres"
	"rentwise/pkg/rabbitmq/rabbitmq_common"
	"rentwise/pkg/rabbitmq/rabbitmq_producer"
)

// App owns every component and its lifecycle.
type App struct {
	config    *configs.AppConfig
	logger    port.LoggerPort
	dbPool    *pgxpool.Pool
	apiServer *rest.Server

	publisher   port.EventPublisherPort
	amqpManager *rabbitmq_common.ConnectionManager
}

// NewApp loads configuration and wires every adapter, use case and the
// HTTP server.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, err := buildLogger(appConfig)
	if err != nil {
		return nil, err
	}

	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{
		DatabaseURL: appConfig.Database.URL,
		MaxConns:    appConfig.Database.MaxConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	baseLogger.Info("Connected to PostgreSQL pool", nil)

	propertyStorage, err := postgres_adapter.NewPropertyStorageAdapter(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create property storage adapter: %w", err)
	}
	userStorage, err := postgres_adapter.NewUserStorageAdapter(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create user storage adapter: %w", err)
	}
	insightsRepo, err := postgres_adapter.NewInsightsRepository(dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to create insights repository: %w", err)
	}
	baseLogger.Info("All outgoing adapters initialized", nil)

	// Event publishing is optional; without a broker the use cases get a
	// no-op publisher.
	var publisher port.EventPublisherPort = rabbitmq_adapter.NoopPublisher{}
	var amqpManager *rabbitmq_common.ConnectionManager
	if appConfig.RabbitMQ.URL != "" {
		amqpManager, err = rabbitmq_common.NewManager(appConfig.RabbitMQ.URL, rabbitmq_adapter.NewPkgLoggerBridge(baseLogger))
		if err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			ExchangeName:             constants.ListingEventsExchange,
			ExchangeType:             constants.ListingEventsExchangeType,
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,
			Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(baseLogger),
		}, amqpManager)
		if err != nil {
			amqpManager.Close()
			dbPool.Close()
			return nil, fmt.Errorf("failed to create event producer: %w", err)
		}
		publisher, err = rabbitmq_adapter.NewListingEventsPublisher(producer)
		if err != nil {
			amqpManager.Close()
			dbPool.Close()
			return nil, err
		}
		baseLogger.Info("Listing events publisher initialized", nil)
	} else {
		baseLogger.Warn("RABBITMQ_URL not set, listing events disabled", nil)
	}

	searchUC := usecase.NewSearchPropertiesUseCase(propertyStorage)
	getPropertyUC := usecase.NewGetPropertyUseCase(propertyStorage)
	createPropertyUC := usecase.NewCreatePropertyUseCase(propertyStorage, publisher)
	updatePropertyUC := usecase.NewUpdatePropertyUseCase(propertyStorage, publisher)
	deletePropertyUC := usecase.NewDeletePropertyUseCase(propertyStorage, publisher)
	listLandlordUC := usecase.NewListLandlordPropertiesUseCase(propertyStorage)
	rentTrendsUC := usecase.NewGetRentTrendsUseCase(insightsRepo)
	platformStatsUC := usecase.NewGetPlatformStatsUseCase(insightsRepo)
	registerUC := usecase.NewRegisterUserUseCase(userStorage)
	profileUC := usecase.NewGetProfileUseCase(userStorage)
	updateProfileUC := usecase.NewUpdateProfileUseCase(userStorage)
	changePasswordUC := usecase.NewChangePasswordUseCase(userStorage)
	toggleSavedUC := usecase.NewToggleSavedPropertyUseCase(userStorage, propertyStorage)
	savedListUC := usecase.NewGetSavedPropertiesUseCase(userStorage)
	baseLogger.Info("All use cases initialized", nil)

	imageStore, err := rest.NewImageStore(appConfig.Rest.UploadsDir)
	if err != nil {
		dbPool.Close()
		return nil, err
	}

	propertyHandlers := rest.NewPropertyHandlers(
		searchUC, getPropertyUC, createPropertyUC, updatePropertyUC,
		deletePropertyUC, listLandlordUC, imageStore,
	)
	insightsHandlers := rest.NewInsightsHandlers(rentTrendsUC, platformStatsUC)
	userHandlers := rest.NewUserHandlers(profileUC, updateProfileUC, changePasswordUC, toggleSavedUC, savedListUC)
	authHandlers := rest.NewAuthHandlers(registerUC)

	apiServer := rest.NewServer(rest.ServerConfig{
		Port:           appConfig.Rest.Port,
		AllowedOrigins: appConfig.Rest.AllowedOrigins,
		JWTSecret:      appConfig.Rest.JWTSecret,
		UploadsDir:     appConfig.Rest.UploadsDir,
	}, baseLogger, propertyHandlers, insightsHandlers, userHandlers, authHandlers)

	return &App{
		config:      appConfig,
		logger:      baseLogger,
		dbPool:      dbPool,
		apiServer:   apiServer,
		publisher:   publisher,
		amqpManager: amqpManager,
	}, nil
}

// buildLogger assembles the logger stack: colored slog on stdout, plus a
// Fluent Bit forwarder when configured.
func buildLogger(cfg *configs.AppConfig) (port.LoggerPort, error) {
	level := slog.LevelInfo
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	slogLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    level,
		IsJSON:   cfg.Log.JSON,
		UseColor: !cfg.Log.JSON,
	})

	if cfg.Fluent.Host == "" {
		return slogLogger, nil
	}

	fluentClient, err := fluentlogger.NewClient(fluentlogger.Config{
		Host:      cfg.Fluent.Host,
		Port:      cfg.Fluent.Port,
		TagPrefix: cfg.Fluent.TagPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluent client: %w", err)
	}
	fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, level)
	if err != nil {
		return nil, err
	}

	return logger_adapter.NewMultiloggerAdapter(slogLogger, fluentAdapter)
}

// Migrate applies the database schema and returns.
func (a *App) Migrate(ctx context.Context) error {
	return postgres_adapter.Migrate(contextkeys.ContextWithLogger(ctx, a.logger), a.dbPool)
}

// Run starts the HTTP server and blocks until a shutdown signal.
func (a *App) Run() error {
	defer func() {
		a.logger.Info("App: Shutdown sequence initiated", nil)

		if a.publisher != nil {
			if err := a.publisher.Close(); err != nil {
				a.logger.Error("App: Error closing event publisher", err, nil)
			}
		}
		if a.amqpManager != nil {
			if err := a.amqpManager.Close(); err != nil {
				a.logger.Error("App: Error closing RabbitMQ connection", err, nil)
			}
		}
		if a.apiServer != nil {
			if err := a.apiServer.Stop(context.Background()); err != nil {
				a.logger.Error("App: Error closing api server", err, nil)
			}
		}
		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("App: PostgreSQL pool closed", nil)
		}
		a.logger.Info("Application shut down gracefully", nil)
	}()

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", port.Fields{"port": a.config.Rest.Port})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running, waiting for signals", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Info("App: Received signal, shutting down", port.Fields{"signal": receivedSignal.String()})
	case err := <-serverErrors:
		a.logger.Error("App: HTTP server failed", err, nil)
		return err
	}

	return nil
}

// Close releases resources when App is used without Run (e.g. migrate).
func (a *App) Close() {
	if a.dbPool != nil {
		a.dbPool.Close()
	}
	if a.amqpManager != nil {
		if err := a.amqpManager.Close(); err != nil {
			log.Printf("App: error closing RabbitMQ connection: %v", err)
		}
	}
}
