package main

import (
	"context"
	"errors"
	"log"

	"go.uber.org/zap"

	"github.com/spec-kit/riding-hub/internal/config"
	"github.com/spec-kit/riding-hub/internal/domain"
	"github.com/spec-kit/riding-hub/internal/observability"
	"github.com/spec-kit/riding-hub/internal/persistence"
	"github.com/spec-kit/riding-hub/internal/repository"
	"github.com/spec-kit/riding-hub/internal/service"
	apperrors "github.com/spec-kit/riding-hub/pkg/util"
)

// Seeds the roster: the initial admin plus pre-provisioned explorer and
// advisor accounts that members later claim by registering. Safe to run
// repeatedly; existing accounts are skipped.
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

	ctx := context.Background()

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

	userRepo := repository.NewUserRepository(pg.PoolHandle())
	authService := service.NewAuthService(*cfg, userRepo)

	if err := authService.EnsureInitialAdmin(ctx, cfg.InitialAdmin); err != nil {
		logger.Fatal("failed to ensure initial admin", zap.Error(err))
	}

	created := 0
	created += seedRole(ctx, logger, authService, domain.SeedExplorers, domain.RoleExplorer)
	created += seedRole(ctx, logger, authService, domain.SeedAdvisors, domain.RoleAdvisor)
	created += seedRole(ctx, logger, authService, domain.SeedEmployees, domain.RoleAdvisor)

	logger.Info("roster seeded", zap.Int("created", created))
}

func seedRole(ctx context.Context, logger *zap.Logger, authService *service.AuthService, names []string, role domain.Role) int {
	created := 0
	for _, name := range names {
		if _, err := authService.AddUser(ctx, name, role, nil); err != nil {
			var domainErr *apperrors.DomainError
			if errors.As(err, &domainErr) && domainErr.Code == "CONFLICT" {
				continue
			}
			logger.Warn("failed to seed account", zap.String("name", name), zap.Error(err))
			continue
		}
		created++
	}
	return created
}
