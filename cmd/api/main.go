package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/riding-hub/internal/api/http"
	"github.com/spec-kit/riding-hub/internal/api/http/handlers"
	"github.com/spec-kit/riding-hub/internal/auth"
	"github.com/spec-kit/riding-hub/internal/config"
	"github.com/spec-kit/riding-hub/internal/events"
	"github.com/spec-kit/riding-hub/internal/observability"
	"github.com/spec-kit/riding-hub/internal/persistence"
	"github.com/spec-kit/riding-hub/internal/repository"
	"github.com/spec-kit/riding-hub/internal/service"
	"github.com/spec-kit/riding-hub/internal/worker"
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
	signOffRepo := repository.NewSignOffRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	shiftRepo := repository.NewShiftLogRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, userRepo)
	signOffService := service.NewSignOffService(service.SignOffDependencies{
		SignOffRepo: signOffRepo,
		UserRepo:    userRepo,
		Dispatcher:  dispatcher,
	})
	shiftService := service.NewShiftService(shiftRepo, dispatcher)
	messageService := service.NewMessageService(messageRepo, userRepo, dispatcher)
	exportService := service.NewExportService(signOffRepo, messageRepo, shiftRepo, userRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	notificationService := service.NewNotificationService(dispatcher, userRepo, logger, cfg.SMTP)
	worker.StartNotificationWorker(notificationService)

	if err := authService.EnsureInitialAdmin(ctx, cfg.InitialAdmin); err != nil {
		logger.Fatal("failed to ensure initial admin", zap.Error(err))
	}

	siteGate := auth.NewSiteGate(redis.Client, settingsRepo, cfg.SiteGate.TokenTTLMinutes, cfg.Auth.BcryptCost)
	if err := siteGate.EnsurePassword(ctx, cfg.SiteGate.DefaultPassword); err != nil {
		logger.Fatal("failed to ensure site password", zap.Error(err))
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Site:       handlers.NewSiteHandler(siteGate),
		Users:      handlers.NewUsersHandler(authService),
		SignOffs:   handlers.NewSignOffsHandler(signOffService),
		Advisors:   handlers.NewAdvisorsHandler(signOffService),
		Shifts:     handlers.NewShiftsHandler(shiftService),
		Messages:   handlers.NewMessagesHandler(messageService),
		Curriculum: handlers.NewCurriculumHandler(),
		Admin: handlers.NewAdminHandler(handlers.AdminDependencies{
			Users:    authService,
			SignOffs: signOffService,
			Export:   exportService,
			Settings: settingsService,
			SiteGate: siteGate,
		}),
		AuthMiddleware: authMiddleware,
		SiteGate:       siteGate,
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
