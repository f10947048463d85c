package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/techhelpdesk/helpdesk-service/internal/api/http"
	"github.com/techhelpdesk/helpdesk-service/internal/api/http/handlers"
	"github.com/techhelpdesk/helpdesk-service/internal/auth"
	"github.com/techhelpdesk/helpdesk-service/internal/config"
	"github.com/techhelpdesk/helpdesk-service/internal/events"
	"github.com/techhelpdesk/helpdesk-service/internal/observability"
	"github.com/techhelpdesk/helpdesk-service/internal/persistence"
	"github.com/techhelpdesk/helpdesk-service/internal/repository"
	"github.com/techhelpdesk/helpdesk-service/internal/service"
	"github.com/techhelpdesk/helpdesk-service/internal/worker"
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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	clientRepo := repository.NewClientRepository(pool)
	technicianRepo := repository.NewTechnicianRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	workloadCache := persistence.NewWorkloadCache(redis)
	dispatcher := events.NewInMemoryDispatcher()

	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		TicketRepo:     ticketRepo,
		TechnicianRepo: technicianRepo,
		WorkloadCache:  workloadCache,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:     ticketRepo,
		CategoryRepo:   categoryRepo,
		ClientRepo:     clientRepo,
		TechnicianRepo: technicianRepo,
		Assignment:     assignmentService,
		WorkloadCache:  workloadCache,
		Dispatcher:     dispatcher,
	})
	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	categoryService := service.NewCategoryService(categoryRepo)
	clientService := service.NewClientService(clientRepo)
	technicianService := service.NewTechnicianService(technicianRepo, assignmentService)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Users:          handlers.NewUsersHandler(userService),
		Categories:     handlers.NewCategoriesHandler(categoryService),
		Clients:        handlers.NewClientsHandler(clientService),
		Technicians:    handlers.NewTechniciansHandler(technicianService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	logger.Info("helpdesk service started", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
