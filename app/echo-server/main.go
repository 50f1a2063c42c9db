package main

import (
	"context"
	"fmt"
	"log"
	"myFitLane/app/echo-server/router"
	"myFitLane/business/catalog"
	"myFitLane/business/session"
	"myFitLane/internal/middleware"
	"myFitLane/internal/repository/fakestore"
	psqlRepo "myFitLane/internal/repository/postgres"
	redisRepo "myFitLane/internal/repository/redis"
	"myFitLane/internal/rest"
	"myFitLane/pkg/config"
	"myFitLane/pkg/database"
	redisdb "myFitLane/pkg/database/redis"
	"myFitLane/pkg/logger"
	"myFitLane/pkg/metrics"
	"myFitLane/pkg/utils"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting MyFitLane", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	// Init store backend
	var store catalog.StoreRepository
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		db, err := database.InitPostgres(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", "error", err)
		}
		store = psqlRepo.NewStoreRepository(db)
	default:
		client, err := redisdb.NewRedisClient(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		store = redisRepo.NewStoreRepository(client)
	}

	logger.Info("Store backend ready", "backend", cfg.Store.Backend)

	// Init upstream client
	upstream := fakestore.NewFakeStoreRepository(fakestore.FakeStoreConfig{
		BaseURL: cfg.Upstream.BaseURL,
		Timeout: time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second,
	})

	// Init service
	catalogCfg := catalog.DefaultConfig()
	catalogCfg.SaleProbability = cfg.Catalog.SaleProbability
	catalogCfg.SaleDiscount = cfg.Catalog.SaleDiscount
	catalogCfg.BadgeProbability = cfg.Catalog.BadgeProbability
	catalogCfg.FetchLimit = cfg.Catalog.FetchLimit

	catalogService := catalog.NewCatalogService(upstream, store, catalogCfg)
	sessionService := session.NewSessionService(upstream, store)

	// Init handler
	catalogHandler := rest.NewCatalogHandler(catalogService)
	sessionHandler := rest.NewSessionHandler(sessionService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.Trace())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupCatalogRoutes(api, catalogHandler)
	router.SetupSessionRoutes(api, sessionHandler)

	// Warm the catalog in the background; a failure just means "no products"
	// until a later request loads it.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := catalogService.LoadCatalog(ctx); err != nil {
			logger.Warn("Initial catalog load failed", "error", err)
		}
	}()

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
