// Package main Fate Server
//
//	@title			Fate Server API
//	@version		1.0
//	@description	Финансовая игра-симулятор: 12 месяцев решений, рисков и сбережений
//	@BasePath		/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the session token.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fate-server/internal/auth"
	"fate-server/internal/config"
	delivery "fate-server/internal/delivery/http"
	"fate-server/internal/delivery/http/middleware"
	"fate-server/internal/game"
	"fate-server/internal/messaging"
	"fate-server/internal/provider"
	"fate-server/internal/repository"
	"fate-server/internal/scheduler"
	"fate-server/internal/service"
	"fate-server/pkg/database"
	"fate-server/pkg/logger"
	"fate-server/pkg/migration"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	log.Println("Starting fate-server...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Encoding:    cfg.LogEncoding,
		Service:     "fate-server",
		Environment: cfg.Environment,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	cfg.LogSummary(zapLogger)

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Fatal("Server terminated with error", zap.Error(err))
	}
	zapLogger.Info("fate-server stopped")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := loadCatalog(cfg, logger)
	if err != nil {
		return err
	}

	repo, cleanupRepo, err := setupRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanupRepo()

	publisher, cleanupPublisher, err := setupPublisher(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanupPublisher()

	backendFactory, err := provider.NewBackendFactory(provider.BackendConfig{
		Backend: cfg.AIBackend,
		Model:   cfg.AIModel,
		BaseURL: cfg.AIBaseURL,
		Timeout: cfg.AITimeout,
	}, logger)
	if err != nil {
		return err
	}
	scenarioProvider := provider.NewScenarioProvider(backendFactory, cfg.AIBackend, cfg.AITimeout, logger)

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to create token manager: %w", err)
	}

	gameService := service.NewGameService(repo, catalog, scenarioProvider, publisher, cfg.AIAPIKey, logger)
	gameHandler := delivery.NewGameHandler(gameService, tokens, logger)

	purgeScheduler := scheduler.NewScheduler(repo, cfg.SessionIdleTTL, logger)
	if err := purgeScheduler.Register(cfg.PurgeSchedule); err != nil {
		return err
	}
	purgeScheduler.Start()
	defer purgeScheduler.Stop()

	e := echo.New()
	e.HideBanner = true
	e.Validator = delivery.NewRequestValidator()
	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.EchoZapLogger(logger))
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	delivery.RegisterDocs(e)
	gameHandler.RegisterRoutes(e, tokens)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received, starting graceful shutdown...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// loadCatalog читает каталог из CATALOG_PATH или берет встроенный.
// Пустой или некорректный каталог - фатальная ошибка запуска.
func loadCatalog(cfg *config.Config, logger *zap.Logger) (*game.Catalog, error) {
	var (
		catalog *game.Catalog
		err     error
	)
	if cfg.CatalogPath != "" {
		catalog, err = game.LoadCatalogFile(cfg.CatalogPath)
	} else {
		catalog, err = game.DefaultCatalog()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scenario catalog: %w", err)
	}
	logger.Info("Scenario catalog loaded", zap.Int("scenarios", catalog.Len()), zap.String("path", cfg.CatalogPath))
	return catalog, nil
}

func setupRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.SessionRepository, func(), error) {
	switch cfg.SessionStore {
	case config.StorePostgres:
		pool, err := database.ConnectPostgres(ctx, database.PostgresConfig{
			DSN:         cfg.GetDSN(),
			MaxConns:    cfg.DBMaxConns,
			IdleTimeout: cfg.DBIdleTimeout,
			MaxRetries:  cfg.ConnectMaxRetries,
			RetryDelay:  cfg.ConnectRetryDelay,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		migrator := migration.NewMigrator(migration.Config{FS: repository.MigrationsFS, Dir: repository.MigrationsDir}, pool, logger)
		if err := migrator.Up(); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return repository.NewPgSessionRepository(pool, logger), pool.Close, nil

	case config.StoreRedis:
		client, err := database.ConnectRedis(ctx, database.RedisConfig{
			Addr:       cfg.RedisAddr,
			Password:   cfg.RedisPassword,
			DB:         cfg.RedisDB,
			MaxRetries: cfg.ConnectMaxRetries,
			RetryDelay: cfg.ConnectRetryDelay,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		closeClient := func() {
			if err := client.Close(); err != nil {
				logger.Warn("Failed to close Redis client", zap.Error(err))
			}
		}
		return repository.NewRedisSessionRepository(client, cfg.SessionIdleTTL, logger), closeClient, nil

	default:
		logger.Warn("Using in-memory session store, sessions will not survive a restart")
		return repository.NewMemorySessionRepository(logger), func() {}, nil
	}
}

func setupPublisher(ctx context.Context, cfg *config.Config, logger *zap.Logger) (messaging.EventPublisher, func(), error) {
	if cfg.RabbitMQURL == "" {
		logger.Info("RABBITMQ_URL not set, game events are not published")
		return messaging.NewNoopEventPublisher(logger), func() {}, nil
	}

	conn, err := messaging.Connect(ctx, cfg.RabbitMQURL, cfg.ConnectMaxRetries, cfg.ConnectRetryDelay, logger)
	if err != nil {
		return nil, nil, err
	}
	publisher, err := messaging.NewRabbitMQEventPublisher(conn, cfg.GameEventsQueue, logger)
	if err != nil {
		closeConnection(conn, logger)
		return nil, nil, err
	}
	return publisher, func() { closeConnection(conn, logger) }, nil
}

func closeConnection(conn *amqp.Connection, logger *zap.Logger) {
	if err := conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		logger.Warn("Failed to close RabbitMQ connection", zap.Error(err))
	}
}
