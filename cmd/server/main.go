package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/ogurasousui/office-rota/internal/adapters/events/natspub"
	httphandler "github.com/ogurasousui/office-rota/internal/adapters/http/handler"
	"github.com/ogurasousui/office-rota/internal/adapters/repository/memory"
	"github.com/ogurasousui/office-rota/internal/adapters/repository/postgres"
	"github.com/ogurasousui/office-rota/internal/core/rota"
	"github.com/ogurasousui/office-rota/internal/platform/config"
	pg "github.com/ogurasousui/office-rota/internal/platform/db/postgres"
	"github.com/ogurasousui/office-rota/internal/platform/logging"
	"github.com/ogurasousui/office-rota/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	generator, err := rota.NewGenerator(cfg.Schedule.WorkingDaysPerWeek, nil)
	if err != nil {
		return fmt.Errorf("build generator: %w", err)
	}

	var (
		repo rota.Repository
		tx   rota.TransactionManager
	)
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		dbPool, err := pg.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("initialize database pool: %w", err)
		}
		defer dbPool.Close()
		repo = postgres.NewScheduleRepository(dbPool)
		tx = pg.NewTransactionManager(dbPool)
	default:
		repo = memory.NewScheduleRepository()
	}

	opts := []rota.Option{rota.WithLogger(logger)}
	if cfg.Events.NATSURL != "" {
		nc, err := natspub.Connect(cfg.Events.NATSURL)
		if err != nil {
			return err
		}
		defer nc.Drain()
		opts = append(opts, rota.WithPublisher(natspub.NewPublisher(nc, cfg.Events.Subject)))
	}

	svc := rota.NewService(repo, generator, nil, tx, opts...)

	g, ctx := errgroup.WithContext(ctx)

	grpcServer := server.New(cfg.Server.ListenAddr, svc, logger)
	g.Go(func() error {
		logger.Info("gRPC server listening", "addr", cfg.Server.ListenAddr, "store", cfg.Store.Driver)
		return grpcServer.Run(ctx)
	})

	if cfg.Server.HTTPListenAddr != "" {
		httpServer := server.NewHTTP(cfg.Server.HTTPListenAddr, httphandler.NewScheduleHandler(svc, logger).Routes())
		g.Go(func() error {
			logger.Info("HTTP server listening", "addr", cfg.Server.HTTPListenAddr)
			return httpServer.Run(ctx)
		})
	}

	return g.Wait()
}
