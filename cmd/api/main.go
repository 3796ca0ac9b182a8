package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/wholesale-hub/wholesale-service/internal/api/http"
	"github.com/wholesale-hub/wholesale-service/internal/api/http/handlers"
	"github.com/wholesale-hub/wholesale-service/internal/auth"
	"github.com/wholesale-hub/wholesale-service/internal/config"
	"github.com/wholesale-hub/wholesale-service/internal/events"
	"github.com/wholesale-hub/wholesale-service/internal/messaging"
	"github.com/wholesale-hub/wholesale-service/internal/observability"
	"github.com/wholesale-hub/wholesale-service/internal/persistence"
	"github.com/wholesale-hub/wholesale-service/internal/repository"
	"github.com/wholesale-hub/wholesale-service/internal/service"
	"github.com/wholesale-hub/wholesale-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if _, err := persistence.NewMigrator(pg.Pool, cfg.Postgres.MigrationsDir, logger).Up(ctx); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.Pool
	txManager := repository.NewTxManager(pool)
	userRepo := repository.NewUserRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	variantRepo := repository.NewVariantRepository(pool)
	categoryRepo := repository.NewCachedCategoryRepository(
		repository.NewCategoryRepository(pool), redis.Client, cfg.Redis.CategoryCacheTTL, logger)

	dispatcher := events.NewInMemoryDispatcher()
	var publisher messaging.Publisher
	if cfg.RabbitMQ.URL != "" {
		rabbit := messaging.NewRabbitPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, logger)
		defer rabbit.Close() //nolint:errcheck
		publisher = rabbit
	}
	worker.StartEventRelay(service.NewEventRelayService(dispatcher, publisher, logger))

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret)
	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		TxManager:   txManager,
		Tokens:      tokens,
		Verifier:    auth.BcryptVerifier{Cost: cfg.Auth.BcryptCost},
		Logger:      logger,
	})
	guard := service.NewOwnershipGuard(productRepo, variantRepo, logger)
	productService := service.NewProductService(service.ProductDependencies{
		ProductRepo:  productRepo,
		VariantRepo:  variantRepo,
		CategoryRepo: categoryRepo,
		Guard:        guard,
		TxManager:    txManager,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	variantService := service.NewVariantService(service.VariantDependencies{
		VariantRepo: variantRepo,
		Guard:       guard,
		TxManager:   txManager,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	categoryService := service.NewCategoryService(categoryRepo)

	if cfg.Auth.SeedEnabled {
		if err := service.NewSeeder(authService, userRepo, categoryRepo, logger).Run(ctx); err != nil {
			logger.Fatal("failed to seed data", zap.Error(err))
		}
	}

	go worker.NewSessionSweeper(sessionRepo, cfg.Sweeper.Interval, logger).Run(ctx)

	readiness := map[string]handlers.Pinger{"postgres": pg}
	if redis.Enabled() {
		readiness["redis"] = redis
	}

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, metrics, readiness),
		Auth:           handlers.NewAuthHandler(authService, logger),
		Categories:     handlers.NewCategoriesHandler(categoryService),
		Products:       handlers.NewProductsHandler(productService, logger),
		Variants:       handlers.NewVariantsHandler(variantService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, logger),
		RateLimiter:    httptransport.NewRateLimiter(cfg.RateLimit, redis.Client, logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
