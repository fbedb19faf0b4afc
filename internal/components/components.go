package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"highwayMonitor/internal/api"
	"highwayMonitor/internal/api/handlers/http/admin"
	"highwayMonitor/internal/api/handlers/http/public"
	"highwayMonitor/internal/api/handlers/http/system"
	"highwayMonitor/internal/api/handlers/ws"
	"highwayMonitor/internal/config"
	"highwayMonitor/internal/feed"
	"highwayMonitor/internal/metrics"
	"highwayMonitor/internal/redis"
	"highwayMonitor/internal/service"
	"highwayMonitor/internal/storage/evidence"
	"highwayMonitor/internal/storage/memory"
	"highwayMonitor/internal/storage/postgres"
	"highwayMonitor/internal/workers"
	"highwayMonitor/pkg/logger"
)

// incidentStore is what both storage drivers provide.
type incidentStore interface {
	service.IncidentRepository
	workers.ImageIndex
}

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Postgres   *postgres.Postgres
	Redis      *redis.Redis
	Hub        *feed.Hub
	Evidence   *evidence.Store
	Service    *service.Service

	Relay    *workers.EventRelay
	Janitor  *workers.EvidenceJanitor
	Webhooks *service.WebhookSender
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	metrics.Register()

	c := &Components{logger: logger}
	checks := map[string]system.Pinger{}

	var store incidentStore
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		logger.Warn("Using in-memory incident store, data is lost on restart")
		store = memory.NewStore()
	default:
		logger.Info("Initializing Postgres")
		pg, err := postgres.NewPostgres(ctx, cfg, logger)
		if err != nil {
			logger.Error("Failed to init postgres", slog.Any("error", err))
			return nil, fmt.Errorf("failed to init postgres: %w", err)
		}
		c.Postgres = pg
		store = pg.IncidentStore()
		checks["postgres"] = pg.Ping
	}

	evidenceStore, err := evidence.NewStore(cfg.Evidence.Root, logger)
	if err != nil {
		c.ShutdownAll()
		return nil, fmt.Errorf("failed to init evidence store: %w", err)
	}
	c.Evidence = evidenceStore

	c.Hub = feed.NewHub(logger, cfg.Feed.SubscriberBuffer)

	var (
		cache service.IncidentCacheService
		sinks []workers.Sink
	)
	if !cfg.Redis.Disabled {
		logger.Info("Initializing Redis")
		rdb, err := redis.NewRedis(ctx, cfg, logger)
		if err != nil {
			c.ShutdownAll()
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		c.Redis = rdb
		checks["redis"] = rdb.Ping

		incidentCache := redis.NewIncidentCache(rdb.Client)
		cache = incidentCache
		sinks = append(sinks, workers.Sink{Name: "active-cache", Handle: incidentCache.Invalidate})

		if !cfg.Webhook.Disabled {
			queue := redis.NewWebhookQueue(rdb.Client, redis.WebhookQueueKey)
			sinks = append(sinks, workers.Sink{Name: "webhook-queue", Handle: queue.Enqueue})
			c.Webhooks = service.NewWebhookSender(logger, cfg.Webhook, queue)
		}
	}

	lifecycle := service.NewLifecycleService(store, evidenceStore, c.Hub, logger)
	dashboard := service.NewDashboardService(store, cache, cfg.Redis.CacheTTL, logger)
	reports := service.NewReportService(store, logger)
	c.Service = service.NewService(lifecycle, dashboard, reports)

	c.Relay = workers.NewEventRelay(c.Hub, logger, sinks...)
	c.Janitor = workers.NewEvidenceJanitor(store, evidenceStore, cfg.Evidence.JanitorSchedule, cfg.Evidence.OrphanGrace, logger)

	c.HttpServer = api.NewServer(cfg, logger, api.Handlers{
		Admin:  admin.NewHandler(logger, lifecycle, reports),
		Public: public.NewHandler(logger, lifecycle, dashboard, evidenceStore),
		System: system.NewHandler(logger, checks),
		Feed:   ws.NewHandler(logger, c.Hub),
	})
	logger.Info("Initialized server",
		slog.String("storage", cfg.Storage.Driver),
		slog.Bool("redis", c.Redis != nil),
		slog.Bool("webhooks", c.Webhooks != nil),
	)

	return c, nil
}

// RunWorkers starts the background workers. The returned group is done
// once every worker has returned after ctx is canceled.
func (c *Components) RunWorkers(ctx context.Context) *sync.WaitGroup {
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		c.Relay.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		if err := c.Janitor.Run(ctx); err != nil {
			c.logger.Error("evidence janitor failed", slog.Any("error", err))
		}
	}()

	if c.Webhooks != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Webhooks.Run(ctx)
		}()
	}

	return &wg
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Component shutdown started")

	if c.Hub != nil {
		c.Hub.Close()
	}
	if c.Postgres != nil {
		c.Postgres.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
