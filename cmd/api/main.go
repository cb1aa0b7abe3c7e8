package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/live-commerce/internal/api/http"
	"github.com/spec-kit/live-commerce/internal/api/http/handlers"
	"github.com/spec-kit/live-commerce/internal/auth"
	"github.com/spec-kit/live-commerce/internal/config"
	"github.com/spec-kit/live-commerce/internal/events"
	"github.com/spec-kit/live-commerce/internal/media"
	"github.com/spec-kit/live-commerce/internal/observability"
	"github.com/spec-kit/live-commerce/internal/persistence"
	"github.com/spec-kit/live-commerce/internal/repository"
	"github.com/spec-kit/live-commerce/internal/service"
	"github.com/spec-kit/live-commerce/internal/worker"
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

	pool := pg.PoolHandle()
	if pool != nil && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var userRepo repository.UserRepository
	var streamPrimary repository.StreamRepository
	var productPrimary repository.ProductRepository
	var categoryRepo repository.CategoryRepository
	if pool != nil {
		userRepo = repository.NewUserRepository(pool)
		streamPrimary = repository.NewStreamRepository(pool)
		productPrimary = repository.NewProductRepository(pool)
		categoryRepo = repository.NewCategoryRepository(pool)
	} else {
		userRepo = repository.NewUnavailableUserStore()
		categoryRepo = repository.NewUnavailableCategoryStore()
	}
	streamRepo := repository.NewStreamFailover(streamPrimary, repository.NewMemoryStreamStore(), logger)
	productRepo := repository.NewProductFailover(productPrimary, repository.NewMemoryProductStore(), logger)

	mediaStore, err := media.NewStore(cfg.Media.RecordingsDir)
	if err != nil {
		logger.Fatal("failed to prepare recordings directory", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	videoToken := auth.NewVideoTokenProvider(
		cfg.Video.APIKey,
		cfg.Video.APISecret,
		time.Duration(cfg.Video.ViewerTokenTTLMins)*time.Minute,
	)
	viewers := persistence.NewRedisViewerCounter(redis)

	authService := service.NewAuthService(*cfg, userRepo)
	adminService := service.NewAdminService(userRepo, dispatcher)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, dispatcher)
	sellerService := service.NewSellerService(streamRepo, productRepo)
	streamService := service.NewStreamService(streamRepo, mediaStore, videoToken, viewers, dispatcher, logger)

	gate := auth.NewGate(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Media.MaxUploadBytes),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.CORSAllowOrigins)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:      handlers.NewUsersHandler(authService),
		Admin:      handlers.NewAdminHandler(authService, adminService),
		Seller:     handlers.NewSellerHandler(sellerService, authService),
		Products:   handlers.NewProductsHandler(catalogService),
		Categories: handlers.NewCategoriesHandler(catalogService),
		Streams:    handlers.NewStreamsHandler(streamService, cfg.Media),
		Recordings: handlers.NewRecordingsHandler(streamService, cfg.Media),
		Gate:       gate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
