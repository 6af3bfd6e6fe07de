package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/listing-service/internal/api/http"
	"github.com/spec-kit/listing-service/internal/api/http/handlers"
	"github.com/spec-kit/listing-service/internal/auth"
	"github.com/spec-kit/listing-service/internal/config"
	"github.com/spec-kit/listing-service/internal/events"
	"github.com/spec-kit/listing-service/internal/observability"
	"github.com/spec-kit/listing-service/internal/persistence"
	"github.com/spec-kit/listing-service/internal/repository"
	"github.com/spec-kit/listing-service/internal/service"
	"github.com/spec-kit/listing-service/internal/storage"
	"github.com/spec-kit/listing-service/internal/worker"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var mediaStore storage.MediaStore
	mediaClient, err := storage.NewCloudStorageClient(ctx, cfg.Storage.Bucket, cfg.Storage.CredentialsPath)
	if err != nil {
		logger.Warn("media storage unavailable; blob cleanup disabled", zap.Error(err))
	} else {
		mediaStore = mediaClient
		defer mediaClient.Close() //nolint:errcheck
	}

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	listingRepo := repository.NewListingRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	locationRepo := repository.NewLocationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo)
	listingService := service.NewListingService(service.ListingDependencies{
		ListingRepo: listingRepo,
		MediaStore:  mediaStore,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	moderationService := service.NewModerationService(service.ModerationDependencies{
		ListingRepo:      listingRepo,
		ReviewRepo:       reviewRepo,
		NotificationRepo: notificationRepo,
		Dispatcher:       dispatcher,
	})
	notificationService := service.NewNotificationService(notificationRepo, dispatcher, logger, cfg.Notify)
	locationService := service.NewLocationService(locationRepo, redis, logger)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis),
		Users:          handlers.NewUsersHandler(authService),
		Listings:       handlers.NewListingsHandler(listingService),
		Moderation:     handlers.NewModerationHandler(moderationService),
		Notifications:  handlers.NewNotificationsHandler(notificationService),
		Locations:      handlers.NewLocationsHandler(locationService),
		AuthMiddleware: authMiddleware,
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
