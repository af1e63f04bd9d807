// Package bootstrap khởi tạo các phụ thuộc dùng chung cho cmd/api và cmd/seed
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/listing-resolver/app/config"
	"github.com/listing-resolver/app/services"
	"github.com/listing-resolver/internal/search"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// NewLogger zap production cho môi trường production, development cho còn lại
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ConnectMongo kết nối và ping MongoDB
func ConnectMongo(cfg config.MongoConfig, logger *zap.Logger) (*mongo.Client, error) {
	logger.Info("Connecting to MongoDB", zap.String("database", cfg.Database))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("không thể kết nối MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("không thể ping MongoDB: %w", err)
	}

	logger.Info("Successfully connected to MongoDB")
	return client, nil
}

// NewSearchers tạo searcher cho gazetteer và index tin đăng
func NewSearchers(cfg *config.Config, logger *zap.Logger) (*search.GazetteerSearcher, *search.PostIndex, error) {
	gazetteer, err := search.NewGazetteerSearcher(search.SearchConfig{
		Host:          cfg.Meilisearch.URL,
		APIKey:        cfg.Meilisearch.MasterKey,
		IndexName:     cfg.Meilisearch.UnitsIndex,
		Timeout:       cfg.Location.Timeout,
		MaxCandidates: 20,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	return gazetteer, search.NewPostIndex(gazetteer, cfg.Meilisearch.PostsIndex, logger), nil
}

// NewBreadcrumbCache tạo cache breadcrumb theo cache.backend
func NewBreadcrumbCache(cfg *config.Config, db *mongo.Database, logger *zap.Logger) (services.BreadcrumbCache, error) {
	ttl := cfg.Cache.BreadcrumbTTL

	switch cfg.Cache.Backend {
	case config.CacheRedis:
		return services.NewRedisCacheService(cfg.Redis.URL, ttl, logger)
	case config.CacheMongo:
		return services.NewMongoCacheService(db, cfg.Cache.L1Size, ttl, cfg.Cache.GazetteerVersion, logger)
	case config.CacheHybrid:
		redisCache, err := services.NewRedisCacheService(cfg.Redis.URL, ttl, logger)
		if err != nil {
			return nil, err
		}
		mongoCache, err := services.NewMongoCacheService(db, cfg.Cache.L1Size, ttl, cfg.Cache.GazetteerVersion, logger)
		if err != nil {
			return nil, err
		}
		return services.NewHybridCacheService(redisCache, mongoCache, logger), nil
	default:
		return services.NewCacheService(ttl), nil
	}
}
