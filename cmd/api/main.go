package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/glowmart/storefront-service/internal/api/http"
	"github.com/glowmart/storefront-service/internal/api/http/handlers"
	"github.com/glowmart/storefront-service/internal/auth"
	"github.com/glowmart/storefront-service/internal/authz"
	"github.com/glowmart/storefront-service/internal/config"
	"github.com/glowmart/storefront-service/internal/events"
	"github.com/glowmart/storefront-service/internal/identity"
	"github.com/glowmart/storefront-service/internal/mailer"
	"github.com/glowmart/storefront-service/internal/observability"
	"github.com/glowmart/storefront-service/internal/persistence"
	"github.com/glowmart/storefront-service/internal/repository"
	"github.com/glowmart/storefront-service/internal/service"
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

	dispatcher := events.NewInMemoryDispatcher()
	mail := mailer.New(cfg.SMTP, logger)
	mail.RegisterHandlers(dispatcher)

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	staffRepo := repository.NewStaffRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	provider := identity.NewLocalProvider(cfg.Auth, pool, redis.Client, dispatcher, logger)

	auditService := service.NewAuditService(auditRepo, logger)
	authService := service.NewAuthService(provider, accountRepo, staffRepo, auditService, cfg.Site, logger)
	accountService := service.NewAccountService(accountRepo, staffRepo, provider, auditService, logger)
	catalogService := service.NewCatalogService(productRepo, auditService, logger)
	orderService := service.NewOrderService(orderRepo, auditService, logger)
	dashboardService := service.NewDashboardService(accountRepo, productRepo, orderRepo, logger)

	sessionMiddleware := auth.NewSessionMiddleware(authService)
	guards := auth.NewGuards(authz.NewGuard(), authService, logger)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:     handlers.NewAuthHandler(authService),
		Users:    handlers.NewUsersHandler(accountService),
		Products: handlers.NewProductsHandler(catalogService),
		Orders:   handlers.NewOrdersHandler(orderService),
		Reports:  handlers.NewReportsHandler(dashboardService, auditService, orderService),
		Profile:  handlers.NewProfileHandler(accountService),
		Session:  sessionMiddleware,
		Guards:   guards,
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
