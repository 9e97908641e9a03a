package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/groundops-service/internal/api/http"
	"github.com/spec-kit/groundops-service/internal/api/http/handlers"
	"github.com/spec-kit/groundops-service/internal/auth"
	"github.com/spec-kit/groundops-service/internal/config"
	"github.com/spec-kit/groundops-service/internal/events"
	"github.com/spec-kit/groundops-service/internal/observability"
	"github.com/spec-kit/groundops-service/internal/persistence"
	"github.com/spec-kit/groundops-service/internal/repository"
	"github.com/spec-kit/groundops-service/internal/service"
	"github.com/spec-kit/groundops-service/internal/worker"
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
	staffRepo := repository.NewStaffRepository(pool)
	stationRepo := repository.NewStationRepository(pool)
	operationRepo := repository.NewOperationRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, staffRepo)
	rosterService := service.NewRosterService(*cfg, service.RosterDependencies{
		StationRepo: stationRepo,
		StaffRepo:   staffRepo,
	})
	operationService := service.NewOperationService(operationRepo, stationRepo, dispatcher)
	scheduleService := service.NewScheduleService(service.ScheduleDependencies{
		StaffRepo:      staffRepo,
		AssignmentRepo: assignmentRepo,
		OperationRepo:  operationRepo,
	}, logger)
	staffingService := service.NewStaffingService(cfg.Scheduling, service.StaffingDependencies{
		StaffRepo:      staffRepo,
		AssignmentRepo: assignmentRepo,
		OperationRepo:  operationRepo,
		Schedule:       scheduleService,
		Dispatcher:     dispatcher,
		Cache:          redis.ClientHandle(),
	}, logger)
	notificationService := service.NewNotificationService(notificationRepo, dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), staffRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Staff:          handlers.NewStaffHandler(rosterService, notificationService),
		Stations:       handlers.NewStationHandler(rosterService),
		Operations:     handlers.NewOperationHandler(operationService, staffingService),
		Schedule:       handlers.NewScheduleHandler(scheduleService),
		Assignments:    handlers.NewAssignmentHandler(staffingService),
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
