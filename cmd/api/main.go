package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/listing-resolver/app/bootstrap"
	"github.com/listing-resolver/app/config"
	"github.com/listing-resolver/app/controllers"
	"github.com/listing-resolver/app/services"
	"github.com/listing-resolver/routes"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Starting Listing Resolver Service...", zap.String("env", cfg.App.Env))

	mongoClient, err := bootstrap.ConnectMongo(cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}()
	database := mongoClient.Database(cfg.Mongo.Database)

	gazetteer, postIndex, err := bootstrap.NewSearchers(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create Meilisearch searchers", zap.Error(err))
	}

	cache, err := bootstrap.NewBreadcrumbCache(cfg, database, logger)
	if err != nil {
		logger.Fatal("Failed to create breadcrumb cache", zap.Error(err))
	}
	defer cache.Close()

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	switch c := cache.(type) {
	case *services.CacheService:
		c.StartCleanupWorker(bgCtx, 10*time.Minute)
	case *services.MongoCacheService:
		if err := c.WarmUp(bgCtx, cfg.Cache.L1Size); err != nil {
			logger.Warn("Không thể warm up breadcrumb cache", zap.Error(err))
		}
	}

	postStore := services.NewPostStore(database, postIndex, logger)
	if err := postStore.EnsureIndexes(bgCtx); err != nil {
		logger.Warn("Không thể tạo indexes cho posts", zap.Error(err))
	}

	locations := services.NewGazetteerLocationService(gazetteer, cache, services.LocationConfig{
		FuzzyThreshold: cfg.Location.FuzzyThreshold,
		Timeout:        cfg.Location.Timeout,
	}, logger)

	pageService := services.NewPageService(postStore, locations, cfg.Listing.PageSize, logger)
	adminService := services.NewAdminService(database, gazetteer, postIndex, postStore, cache, logger)

	pageController := controllers.NewPageController(pageService, logger)
	adminController := controllers.NewAdminController(adminService, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router, pageController, adminController, logger)

	srv := &http.Server{
		Addr:              cfg.GetServerAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
