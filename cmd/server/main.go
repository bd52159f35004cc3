package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	nhandler "govdesk/internal/notification/handler"
	"govdesk/internal/notification/publisher"
	nservice "govdesk/internal/notification/service"
	nstore "govdesk/internal/notification/store"
	"govdesk/internal/platform/config"
	"govdesk/internal/platform/httpserver"
	"govdesk/internal/platform/logger"
	"govdesk/internal/platform/metrics"
	"govdesk/internal/platform/postgres"
	"govdesk/internal/platform/redis"
	shandler "govdesk/internal/submission/handler"
	smetrics "govdesk/internal/submission/metrics"
	sservice "govdesk/internal/submission/service"
	sstore "govdesk/internal/submission/store"
	httptransport "govdesk/internal/transport/http"
	"govdesk/pkg/platform/circuit"
)

// main wires dependencies, serves HTTP and shuts down on SIGINT or SIGTERM.
// Business logic lives in the internal service packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("govdesk stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("govdesk stopped")
}

type infra struct {
	redis     *redis.Client
	db        *sql.DB
	publisher *publisher.KafkaPublisher
}

func (i *infra) Close(log *slog.Logger) {
	if i.publisher != nil {
		i.publisher.Close()
	}
	if i.db != nil {
		if err := i.db.Close(); err != nil {
			log.Warn("failed to close database", "error", err)
		}
	}
	if i.redis != nil {
		if err := i.redis.Close(); err != nil {
			log.Warn("failed to close redis", "error", err)
		}
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	deps := &infra{}
	defer deps.Close(log)

	var err error
	if deps.redis, err = redis.New(ctx, cfg.Redis); err != nil {
		return err
	}
	if cfg.Store.Backend == config.BackendPostgres {
		if deps.db, err = postgres.Open(ctx, cfg.Postgres); err != nil {
			return err
		}
	}

	adapter, err := submissionAdapter(ctx, cfg, deps)
	if err != nil {
		return err
	}
	storeMetrics := smetrics.New()
	submissions, err := sstore.Open(ctx, adapter,
		sstore.WithLogger(log),
		sstore.WithMetrics(storeMetrics),
		sstore.WithReadThrough(cfg.Store.ReadThrough),
	)
	if err != nil {
		return err
	}
	defer submissions.Close()

	notifyOpts := []nservice.Option{nservice.WithLogger(log)}
	if len(cfg.Kafka.Brokers) > 0 {
		deps.publisher, err = publisher.NewKafka(cfg.Kafka.Brokers,
			publisher.WithTopic(cfg.Kafka.Topic),
			publisher.WithLogger(log),
		)
		if err != nil {
			return err
		}
		guarded := publisher.NewGuarded(deps.publisher, circuit.New("kafka-notifications",
			circuit.WithFailureThreshold(cfg.Kafka.FailureThreshold),
			circuit.WithCooldown(cfg.Kafka.Cooldown),
		), log)
		notifyOpts = append(notifyOpts, nservice.WithPublisher(guarded))
	}
	notifications := nservice.New(notificationStore(cfg, deps), notifyOpts...)

	submissionService := sservice.New(submissions, notifications,
		sservice.WithLogger(log),
		sservice.WithMetrics(storeMetrics),
	)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:         log,
		Metrics:        metrics.New(),
		Gatherer:       prometheus.DefaultGatherer,
		RequestTimeout: cfg.Server.RequestTimeout,
	},
		shandler.New(submissionService, log, cfg.Server.PublicBaseURL),
		nhandler.New(notifications, log),
	)

	log.Info("starting govdesk",
		"addr", cfg.Server.Addr,
		"submission_store", cfg.Store.Backend,
		"notification_store", cfg.Store.NotificationBackend,
		"kafka_mirror", deps.publisher != nil,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		srv := httpserver.New(cfg.Server.Addr, router)
		return httpserver.Run(gctx, srv, cfg.Server.ShutdownTimeout, log)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func submissionAdapter(ctx context.Context, cfg config.Config, deps *infra) (sstore.Adapter, error) {
	switch cfg.Store.Backend {
	case config.BackendRedis:
		return sstore.NewRedisAdapter(deps.redis.Client), nil
	case config.BackendPostgres:
		a := sstore.NewPostgresAdapter(deps.db)
		if err := a.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return a, nil
	default:
		return sstore.NewFileAdapter(cfg.Store.SubmissionFile), nil
	}
}

func notificationStore(cfg config.Config, deps *infra) nservice.Store {
	if cfg.Store.NotificationBackend == config.BackendRedis {
		return nstore.NewRedis(deps.redis.Client)
	}
	return nstore.NewFile(cfg.Store.NotificationFile)
}
