package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/sla-monitor/internal/api/http"
	"github.com/spec-kit/sla-monitor/internal/api/http/handlers"
	"github.com/spec-kit/sla-monitor/internal/config"
	"github.com/spec-kit/sla-monitor/internal/events"
	"github.com/spec-kit/sla-monitor/internal/notify"
	"github.com/spec-kit/sla-monitor/internal/observability"
	"github.com/spec-kit/sla-monitor/internal/persistence"
	"github.com/spec-kit/sla-monitor/internal/repository"
	"github.com/spec-kit/sla-monitor/internal/sla"
	"github.com/spec-kit/sla-monitor/internal/worker"
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
	dedupCache := repository.NewDedupCache(redis.Client, cfg.SLA.DedupWindow())
	ticketRepo := repository.NewTicketRepository(pool)
	alertRepo := repository.NewAlertRepository(pool, dedupCache, cfg.SLA.DedupWindow(), logger)
	slaConfigRepo := repository.NewSLAConfigRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notifyService := notify.NewService(dispatcher, logger, cfg.Notification)
	worker.StartAlertWorker(notifyService)

	metrics := observability.NewMetrics()

	resolutionHours, err := slaConfigRepo.LoadResolutionHours(ctx, cfg.SLA.ResolutionHours)
	if err != nil {
		logger.Warn("failed to load resolution hours; using defaults", zap.Error(err))
		resolutionHours = cfg.SLA.ResolutionHours
	}
	calculator := sla.NewDeadlineCalculator(resolutionHours, cfg.SLA.BusinessDayStart, cfg.SLA.BusinessDayEnd, logger)

	monitor := sla.NewMonitor(sla.MonitorDependencies{
		TicketRepo:    ticketRepo,
		AlertRepo:     alertRepo,
		SLAConfigRepo: slaConfigRepo,
		Notifier:      notifyService,
		Logger:        logger,
		Metrics:       metrics,
	}, cfg.SLA.PollInterval(), cfg.SLA.Thresholds())

	if err := monitor.Start(ctx); err != nil {
		logger.Fatal("failed to start sla monitoring", zap.Error(err))
	}

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger)

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	slaHandler := handlers.NewSLAHandler(monitor, calculator, metrics, logger)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: healthHandler,
		SLA:    slaHandler,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	monitor.Stop()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
