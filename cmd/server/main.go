package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bukuinduk/internal/blob"
	"bukuinduk/internal/platform/config"
	"bukuinduk/internal/platform/database"
	"bukuinduk/internal/platform/httpserver"
	"bukuinduk/internal/platform/logger"
	"bukuinduk/internal/platform/metrics"
	"bukuinduk/internal/platform/redis"
	"bukuinduk/internal/registry/aggregator"
	"bukuinduk/internal/registry/composer"
	"bukuinduk/internal/registry/handler"
	"bukuinduk/internal/registry/service"
	"bukuinduk/internal/registry/signature"
	"bukuinduk/internal/registry/store"
	httptransport "bukuinduk/internal/transport/http"
	"bukuinduk/pkg/platform/audit"
	"bukuinduk/pkg/platform/audit/publishers/ops"
	kafkastore "bukuinduk/pkg/platform/audit/store/kafka"
	memorystore "bukuinduk/pkg/platform/audit/store/memory"
)

// main wires dependencies and runs the HTTP server until SIGINT or SIGTERM.
// Business logic lives in the internal registry packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	reg := metrics.NewRegistry()
	health := map[string]httptransport.HealthCheck{}

	db, dialect, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	health["database"] = db.PingContext
	if cfg.Database.Migrate {
		if err := store.Migrate(ctx, db); err != nil {
			return err
		}
		log.Info("database schema applied", "driver", cfg.Database.Driver)
	}
	records := store.NewSQLStore(db, dialect)

	aggOpts := []aggregator.Option{
		aggregator.WithLogger(log),
		aggregator.WithMetrics(aggregator.NewMetrics(reg)),
		aggregator.WithConcurrency(cfg.Registry.FetchConcurrency),
		aggregator.WithFetchTimeout(cfg.Registry.FetchTimeout),
		aggregator.WithBreaker(cfg.Registry.BreakerThreshold, cfg.Registry.BreakerCooldown),
	}
	redisClient, err := redis.Open(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		health["redis"] = redisClient.Check
		aggOpts = append(aggOpts, aggregator.WithCache(aggregator.NewRedisSectionCache(redisClient.Client, cfg.Registry.CacheTTL)))
		log.Info("section cache enabled", "ttl", cfg.Registry.CacheTTL.String())
	}

	files, err := blob.Open(ctx, cfg.Blob)
	if err != nil {
		return err
	}

	auditStore, closeAudit, err := openAuditStore(cfg.Audit)
	if err != nil {
		return err
	}
	defer closeAudit()
	tracker := ops.New(auditStore,
		ops.WithLogger(log),
		ops.WithMetrics(ops.NewMetrics(reg)),
		ops.WithSampler(ops.NewSampler(cfg.Audit.SampleRate)),
	)

	loaderOpts := []signature.Option{signature.WithLogger(log)}
	svcOpts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(service.NewMetrics(reg)),
		service.WithAuditTracker(tracker),
		service.WithAggregateTimeout(cfg.Registry.AggregateTimeout),
	}
	if files != nil {
		loaderOpts = append(loaderOpts, signature.WithFiles(files))
		if cfg.Registry.ArchiveDocuments {
			svcOpts = append(svcOpts, service.WithArchive(files))
		}
		log.Info("blob store enabled", "driver", string(files.Driver()), "archive", cfg.Registry.ArchiveDocuments)
	}
	svcOpts = append(svcOpts, service.WithSignatureLoader(signature.NewLoader(records, loaderOpts...)))

	svc := service.New(
		aggregator.New(records, aggOpts...),
		composer.New(composer.WithLogger(log), composer.WithSchoolName(cfg.Registry.SchoolName)),
		svcOpts...,
	)

	router := httptransport.NewRouter(httptransport.Dependencies{
		Logger:   log,
		Metrics:  reg,
		Health:   health,
		Features: []httptransport.RouteRegistrar{handler.New(svc, log)},
	})
	srv := httpserver.New(cfg.Server.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting bukuinduk", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openAuditStore publishes to Kafka when brokers are configured and keeps
// the most recent events in memory otherwise.
func openAuditStore(cfg config.AuditConfig) (audit.Store, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		return memorystore.NewInMemoryStore(memorystore.WithCapacity(cfg.MemoryCapacity)), func() {}, nil
	}
	client, err := kafkastore.NewClient(cfg.KafkaBrokers, cfg.Topic)
	if err != nil {
		return nil, nil, err
	}
	return kafkastore.New(client, cfg.Topic), client.Close, nil
}
