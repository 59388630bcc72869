package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/helpdesk-ti/chamados-service/internal/api/http"
	"github.com/helpdesk-ti/chamados-service/internal/api/http/handlers"
	"github.com/helpdesk-ti/chamados-service/internal/auth"
	"github.com/helpdesk-ti/chamados-service/internal/config"
	"github.com/helpdesk-ti/chamados-service/internal/events"
	"github.com/helpdesk-ti/chamados-service/internal/observability"
	"github.com/helpdesk-ti/chamados-service/internal/persistence"
	"github.com/helpdesk-ti/chamados-service/internal/repository"
	"github.com/helpdesk-ti/chamados-service/internal/service"
	"github.com/helpdesk-ti/chamados-service/internal/storage"
	"github.com/helpdesk-ti/chamados-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.Env)
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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	serviceTypeRepo := repository.NewServiceTypeRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)
	historyRepo := repository.NewHistoryRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)

	txManager := persistence.NewTxManager(pool)
	store := storage.NewLocalStore(cfg.Storage.BasePath)
	dispatcher := events.NewInMemoryDispatcher()
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	authService := service.NewAuthService(userRepo, tokenManager, cfg.Auth.BcryptCost, logger)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost, logger)
	serviceTypeService := service.NewServiceTypeService(serviceTypeRepo, logger)
	ticketService := service.NewTicketService(service.TicketDependencies{
		Tx:              txManager,
		TicketRepo:      ticketRepo,
		ServiceTypeRepo: serviceTypeRepo,
		UserRepo:        userRepo,
		AttachmentRepo:  attachmentRepo,
		HistoryRepo:     historyRepo,
		Store:           store,
		Dispatcher:      dispatcher,
		Logger:          logger,
	})
	attachmentService := service.NewAttachmentService(service.AttachmentDependencies{
		Tx:             txManager,
		TicketRepo:     ticketRepo,
		AttachmentRepo: attachmentRepo,
		HistoryRepo:    historyRepo,
		Store:          store,
		Dispatcher:     dispatcher,
		Logger:         logger,
	})
	statsService := service.NewStatsService(statsRepo, redis.Client, logger)
	notificationService := service.NewNotificationService(dispatcher, logger)

	worker.StartNotificationWorker(notificationService)
	worker.StartStatsInvalidator(dispatcher, statsService)

	authMiddleware := auth.NewAuthMiddleware(tokenManager, userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: int(cfg.Storage.MaxUploadBytes()) + 1<<20,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService, authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Attachments:    handlers.NewAttachmentsHandler(attachmentService, cfg.Storage.MaxUploadBytes()),
		ServiceTypes:   handlers.NewServiceTypesHandler(serviceTypeService),
		Stats:          handlers.NewStatsHandler(statsService),
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
