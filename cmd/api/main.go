package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-shop-admin.git/internal/catalog"
	"github.com/ariefcatur/go-shop-admin.git/internal/config"
	"github.com/ariefcatur/go-shop-admin.git/internal/events"
	"github.com/ariefcatur/go-shop-admin.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-shop-admin.git/internal/kafka"
	"github.com/ariefcatur/go-shop-admin.git/internal/logx"
	"github.com/ariefcatur/go-shop-admin.git/internal/orders"
	"github.com/ariefcatur/go-shop-admin.git/internal/postgres"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.MigrateOnStart {
		if err := postgres.Migrate(cfg.PostgresDSN); err != nil {
			logger.Fatal("migrate", zap.Error(err))
		}
	}

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()
	cache := redisx.NewProductCache(rdb, cfg.ProductCacheTTL, cfg.ListingCacheTTL)

	// Kafka producers, one per topic
	catalogProd := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicCatalog, 1024, logger)
	catalogProd.Start()
	orderProd := kafkax.NewProducer(cfg.KafkaBrokers, events.TopicOrders, 1024, logger)
	orderProd.Start()
	emitter := &httpx.Emitter{Catalog: catalogProd, Orders: orderProd, Service: cfg.ServiceName, Log: logger}

	// Repos & handlers
	products := &catalog.ProductRepo{DB: db}
	router := httpx.NewRouter(logger)
	(&httpx.StorefrontHandler{Store: products, Cache: cache, Log: logger}).Register(router)

	catalogAdmin := &httpx.CatalogAdmin{
		Products: products,
		Images:   &catalog.ImageRepo{DB: db},
		Variants: &catalog.VariantRepo{DB: db},
		Colors:   &catalog.OptionRepo{DB: db, Kind: catalog.KindColor},
		Sizes:    &catalog.OptionRepo{DB: db, Kind: catalog.KindSize},
		Cache:    cache,
		Events:   emitter,
		Log:      logger,
	}
	ordersAdmin := &httpx.OrdersAdmin{
		Orders: &orders.Repo{DB: db},
		Items:  &orders.ItemRepo{DB: db},
		Events: emitter,
		Log:    logger,
	}
	router.Route("/admin", func(r chi.Router) {
		catalogAdmin.Register(r)
		ordersAdmin.Register(r)
	})

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	// no handler publishes after Shutdown returns; flush what is queued
	catalogProd.Close()
	orderProd.Close()
	catalogProd.WaitClosed()
	orderProd.WaitClosed()
}
