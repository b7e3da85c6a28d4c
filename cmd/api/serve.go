package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/storefront/internal/api/http"
	"github.com/spec-kit/storefront/internal/api/http/handlers"
	"github.com/spec-kit/storefront/internal/auth"
	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/observability"
	"github.com/spec-kit/storefront/internal/service"
	"github.com/spec-kit/storefront/internal/worker"
)

func serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.close()
	cfg, logger := rt.cfg, rt.logger

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL())
	if err != nil {
		logger.Fatal("invalid auth configuration", zap.Error(err))
	}

	metrics := observability.NewMetrics(serviceName)
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartActivityWorker(service.NewActivityService(dispatcher, logger, metrics))

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:    rt.users,
		AdminRepo:   rt.admins,
		ProductRepo: rt.products,
		CartStore:   rt.carts,
		Tokens:      tokens,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	cartService := service.NewCartService(service.CartDependencies{
		ProductRepo: rt.products,
		CartStore:   rt.carts,
		Dispatcher:  dispatcher,
		Metrics:     metrics,
		Logger:      logger,
	})
	catalog := service.NewCatalogService(rt.products, logger)

	cookies := auth.NewSessionCookies(cfg.Session)
	sessions := auth.NewSessionMiddleware(auth.NewResolver(tokens, rt.users, rt.admins), cookies, logger, metrics)

	dependencies := map[string]handlers.Pinger{"postgres": rt.postgres}
	if rt.redis != nil {
		dependencies["redis"] = rt.redis
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:       cfg.App.RequestTimeout(),
		AllowedOrigin: cfg.App.AllowedOrigin,
	})
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies),
		Users:    handlers.NewUsersHandler(authService, cartService, cookies),
		Admin:    handlers.NewAdminHandler(authService, catalog, cookies),
		Cart:     handlers.NewCartHandler(cartService),
		Products: handlers.NewProductsHandler(catalog),
		Shop:     handlers.NewShopHandler(catalog),
		Sessions: sessions,
		Metrics:  metrics,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(ctx, logger)
	return app.Shutdown()
}

func waitForShutdown(ctx context.Context, logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case <-ctx.Done():
		logger.Info("shutting down", zap.Error(ctx.Err()))
	}
}
