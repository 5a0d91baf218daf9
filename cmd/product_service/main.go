package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ridloal/cc-ecommerce/internal/platform/config"
	"github.com/ridloal/cc-ecommerce/internal/platform/database"
	"github.com/ridloal/cc-ecommerce/internal/platform/logger"
	"github.com/ridloal/cc-ecommerce/internal/platform/metrics"
	"github.com/ridloal/cc-ecommerce/internal/platform/server"
	productAPI "github.com/ridloal/cc-ecommerce/internal/product/api"
	productRepo "github.com/ridloal/cc-ecommerce/internal/product/repository"
	productService "github.com/ridloal/cc-ecommerce/internal/product/service"
)

func main() {
	if err := run(); err != nil {
		logger.Error("Product Service exited", err)
		os.Exit(1)
	}
}

func run() error {
	// Load Config
	serverCfg := config.LoadServerConfig("8082")
	storeCfg := config.LoadStoreConfig(config.LoadProductDBConfig())

	// Setup Logger
	logger.Init(logger.Options{Service: "product_service", Env: serverCfg.AppEnv, Level: serverCfg.LogLevel})
	logger.Info("Starting Product Service...", "store", storeCfg.Driver)

	ctx, stop := server.WithSignals(context.Background())
	defer stop()

	// Setup Database
	prodRepository, closeStore, err := openProductRepository(ctx, storeCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer closeStore()

	// Setup Dependencies
	prodService := productService.NewProductService(prodRepository)
	productHandler := productAPI.NewProductHandler(prodService)
	srvMetrics := metrics.NewServerMetrics("product_service", prometheus.DefaultRegisterer)

	// Setup Gin Router
	router := server.NewRouter(serverCfg.AppEnv)
	router.Use(srvMetrics.Middleware())
	router.GET("/healthz", server.HealthHandler(prodService.Ping))
	router.GET("/metrics", gin.WrapH(metrics.Handler(prometheus.DefaultGatherer)))

	productHandler.RegisterRoutes(router)
	productHandler.RegisterRoutes(router.Group("/api/v1"))

	logger.Info("Product Service running on port " + serverCfg.Port)
	if err := server.Run(ctx, serverCfg.Port, router, serverCfg.ShutdownTimeout); err != nil {
		return fmt.Errorf("failed to run Product Service server: %w", err)
	}
	logger.Info("Product Service stopped")
	return nil
}

func openProductRepository(ctx context.Context, cfg config.StoreConfig) (productRepo.ProductRepository, func(), error) {
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
		return productRepo.NewMongoProductRepository(db), closeFn, nil
	case config.StorePostgres:
		db, err := database.Connect(cfg.Postgres.DSN, cfg.MaxOpenConns)
		if err != nil {
			return nil, nil, err
		}
		return productRepo.NewPostgresProductRepository(db), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Driver)
	}
}
