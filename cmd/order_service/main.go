package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ridloal/cc-ecommerce/internal/order/api"
	"github.com/ridloal/cc-ecommerce/internal/order/repository"
	"github.com/ridloal/cc-ecommerce/internal/order/service"
	"github.com/ridloal/cc-ecommerce/internal/platform/config"
	"github.com/ridloal/cc-ecommerce/internal/platform/database"
	"github.com/ridloal/cc-ecommerce/internal/platform/events"
	"github.com/ridloal/cc-ecommerce/internal/platform/logger"
	"github.com/ridloal/cc-ecommerce/internal/platform/metrics"
	"github.com/ridloal/cc-ecommerce/internal/platform/server"
)

func main() {
	if err := run(); err != nil {
		logger.Error("Order Service exited", err)
		os.Exit(1)
	}
}

func run() error {
	// Load Config
	serverCfg := config.LoadServerConfig("8084") // Order service default port 8084
	storeCfg := config.LoadStoreConfig(config.LoadOrderDBConfig())
	eventsCfg := config.LoadEventsConfig()

	logger.Init(logger.Options{Service: "order_service", Env: serverCfg.AppEnv, Level: serverCfg.LogLevel})
	logger.Info("Starting Order Service...", "store", storeCfg.Driver, "broker", eventsCfg.Broker)

	ctx, stop := server.WithSignals(context.Background())
	defer stop()

	// Setup Database
	orderRepository, closeStore, err := openOrderRepository(ctx, storeCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer closeStore()

	publisher, err := events.NewPublisher(eventsCfg)
	if err != nil {
		return fmt.Errorf("failed to set up event publisher: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Event publisher close failed", err)
		}
	}()

	// Setup Dependencies
	ordService := service.NewOrderService(orderRepository, publisher)
	orderHandler := api.NewOrderHandler(ordService)
	srvMetrics := metrics.NewServerMetrics("order_service", prometheus.DefaultRegisterer)

	// Setup Gin Router
	router := server.NewRouter(serverCfg.AppEnv)
	router.Use(srvMetrics.Middleware())
	router.GET("/healthz", server.HealthHandler(ordService.Ping))
	router.GET("/metrics", gin.WrapH(metrics.Handler(prometheus.DefaultGatherer)))

	orderHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router.Group("/api/v1"))

	logger.Info("Order Service running on port " + serverCfg.Port)
	if err := server.Run(ctx, serverCfg.Port, router, serverCfg.ShutdownTimeout); err != nil {
		return fmt.Errorf("failed to run Order Service server: %w", err)
	}
	logger.Info("Order Service stopped")
	return nil
}

func openOrderRepository(ctx context.Context, cfg config.StoreConfig) (repository.OrderRepository, func(), error) {
	switch cfg.Driver {
	case config.StoreMongo:
		client, db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MaxOpenConns)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Error("Mongo disconnect failed", err)
			}
		}
		return repository.NewMongoOrderRepository(db), closeFn, nil
	case config.StorePostgres:
		db, err := database.Connect(cfg.Postgres.DSN, cfg.MaxOpenConns)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresOrderRepository(db), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Driver)
	}
}
