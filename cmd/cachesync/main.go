package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ariefcatur/go-shop-admin.git/internal/cachesync"
	"github.com/ariefcatur/go-shop-admin.git/internal/config"
	"github.com/ariefcatur/go-shop-admin.git/internal/events"
	kafkax "github.com/ariefcatur/go-shop-admin.git/internal/kafka"
	"github.com/ariefcatur/go-shop-admin.git/internal/logx"
	"github.com/ariefcatur/go-shop-admin.git/internal/redisx"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := logx.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("redis ping", zap.Error(err))
	}

	service := cfg.ServiceName + "-cachesync"
	svc := &cachesync.Service{
		Cache: redisx.NewProductCache(rdb, cfg.ProductCacheTTL, cfg.ListingCacheTTL),
		Dedup: &redisx.Dedup{Redis: rdb, Service: service},
		Log:   logger.With(zap.String("service", service)),
	}

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.CacheSyncGroup, events.TopicCatalog, cfg.CacheSyncWorkers, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("cachesync consumer started",
			zap.String("group", cfg.CacheSyncGroup),
			zap.String("topic", events.TopicCatalog),
			zap.Int("workers", cfg.CacheSyncWorkers))
		return cons.Start(gctx, svc.Handle)
	})

	if err := g.Wait(); err != nil {
		logger.Error("consumer exit", zap.Error(err))
	}
	logger.Info("cachesync stopped")
}
