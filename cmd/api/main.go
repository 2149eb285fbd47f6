package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/assetflow/asset-service/internal/api/http"
	"github.com/assetflow/asset-service/internal/api/http/handlers"
	"github.com/assetflow/asset-service/internal/auth"
	"github.com/assetflow/asset-service/internal/config"
	"github.com/assetflow/asset-service/internal/events"
	"github.com/assetflow/asset-service/internal/observability"
	"github.com/assetflow/asset-service/internal/persistence"
	"github.com/assetflow/asset-service/internal/service"
	"github.com/assetflow/asset-service/internal/worker"
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

	store, pg, err := persistence.OpenStore(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.Error(err))
	}
	defer pg.Close()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics(cfg.Metrics)
	}

	dispatcher := events.NewInMemoryDispatcher()
	var sink service.EventSink
	if publisher := redis.Publisher(cfg.Events); publisher != nil {
		sink = publisher
	}
	worker.StartNotificationWorker(dispatcher, service.NewNotificationService(logger, sink), logger)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authService := service.NewAuthService(cfg.Auth, store.Users(), tokens)
	assetService := service.NewAssetService(store.Assets())
	workflowService := service.NewWorkflowService(service.WorkflowDependencies{
		Store:      store,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	billingService := service.NewBillingService(service.BillingDependencies{
		Store:         store,
		Dispatcher:    dispatcher,
		Logger:        logger,
		WebhookSecret: cfg.Billing.WebhookSecret,
	})

	app := httptransport.NewServer(cfg.App.Name,
		httptransport.MiddlewareConfig{
			Logger:     logger,
			Metrics:    metrics,
			Timeout:    cfg.App.RequestTimeout(),
			SiteDomain: cfg.App.SiteDomain,
		},
		httptransport.RouteConfig{
			Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
				"postgres": pg,
				"redis":    redis,
			}),
			Users:          handlers.NewUsersHandler(authService),
			Assets:         handlers.NewAssetsHandler(assetService),
			Requests:       handlers.NewRequestsHandler(workflowService),
			Assignments:    handlers.NewAssignmentsHandler(workflowService),
			Affiliations:   handlers.NewAffiliationsHandler(workflowService),
			Payments:       handlers.NewPaymentsHandler(billingService),
			Metrics:        metrics,
			AuthMiddleware: auth.NewAuthMiddleware(tokens, store.Users()),
		},
	)

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
