package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/config"
	"github.com/spec-kit/storefront/internal/observability"
	"github.com/spec-kit/storefront/internal/persistence"
	"github.com/spec-kit/storefront/internal/repository"
	"github.com/spec-kit/storefront/migrations"
)

// stack holds the process-wide dependencies shared by every command.
type stack struct {
	cfg      *config.Config
	logger   *zap.Logger
	postgres *persistence.Postgres
	redis    *persistence.Redis

	users    repository.UserRepository
	admins   repository.AdminRepository
	products repository.ProductRepository
	carts    repository.CartStore
}

func bootstrap(ctx context.Context) (*stack, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, serviceName)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	rt := &stack{cfg: cfg, logger: logger, postgres: pg}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), migrations.FS, logger); err != nil {
			rt.close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	pool := pg.PoolHandle()
	rt.users = repository.NewUserRepository(pool)
	rt.admins = repository.NewAdminRepository(pool)
	rt.products = repository.NewProductRepository(pool)

	switch cfg.Cart.Backend {
	case config.CartBackendRedis:
		rdb, err := persistence.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			rt.close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		rt.redis = rdb
		rt.carts = repository.NewRedisCartStore(rdb.Client, rt.users, cfg.Cart.RedisPrefix)
	default:
		rt.carts = repository.NewPostgresCartStore(pool)
	}
	logger.Info("cart store selected", zap.String("backend", string(cfg.Cart.Backend)))
	return rt, nil
}

func (rt *stack) close() {
	rt.redis.Close()
	rt.postgres.Close()
	_ = rt.logger.Sync()
}
