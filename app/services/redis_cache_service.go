package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/listing-resolver/app/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisCacheService cache breadcrumb dùng Redis
type RedisCacheService struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisCacheService tạo mới Redis cache service
func NewRedisCacheService(redisURL string, ttl time.Duration, logger *zap.Logger) (*RedisCacheService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("lỗi parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("không thể kết nối Redis: %w", err)
	}

	return NewRedisCacheServiceWithClient(client, ttl, logger), nil
}

// NewRedisCacheServiceWithClient dùng client có sẵn
func NewRedisCacheServiceWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCacheService {
	return &RedisCacheService{
		client: client,
		logger: logger,
		prefix: "listing_resolver:",
		ttl:    ttl,
	}
}

// Get lấy breadcrumb từ cache
func (rcs *RedisCacheService) Get(ctx context.Context, key string) (*models.Breadcrumb, bool, error) {
	cacheKey := rcs.prefix + key

	val, err := rcs.client.Get(ctx, cacheKey).Result()
	if errors.Is(err, redis.Nil) {
		rcs.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		rcs.logger.Error("Lỗi get từ Redis", zap.Error(err), zap.String("key", cacheKey))
		return nil, false, err
	}

	var crumb models.Breadcrumb
	if err := json.Unmarshal([]byte(val), &crumb); err != nil {
		rcs.logger.Error("Lỗi unmarshal cache data", zap.Error(err))
		return nil, false, err
	}

	rcs.hits.Add(1)
	rcs.logger.Debug("Redis cache hit", zap.String("key", key))
	return &crumb, true, nil
}

// Set lưu breadcrumb vào cache
func (rcs *RedisCacheService) Set(ctx context.Context, key string, breadcrumb *models.Breadcrumb) error {
	if breadcrumb == nil {
		return nil
	}
	cacheKey := rcs.prefix + key

	data, err := json.Marshal(breadcrumb)
	if err != nil {
		return fmt.Errorf("lỗi marshal cache data: %w", err)
	}

	if err := rcs.client.Set(ctx, cacheKey, data, rcs.ttl).Err(); err != nil {
		rcs.logger.Error("Lỗi set vào Redis", zap.Error(err), zap.String("key", cacheKey))
		return err
	}

	rcs.logger.Debug("Đã lưu vào Redis cache", zap.String("key", key))
	return nil
}

// Delete xóa key khỏi cache
func (rcs *RedisCacheService) Delete(ctx context.Context, key string) error {
	cacheKey := rcs.prefix + key

	if err := rcs.client.Del(ctx, cacheKey).Err(); err != nil {
		rcs.logger.Error("Lỗi delete từ Redis", zap.Error(err), zap.String("key", cacheKey))
		return err
	}
	return nil
}

// scanKeys liệt kê key theo prefix bằng SCAN
func (rcs *RedisCacheService) scanKeys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := rcs.client.Scan(ctx, 0, rcs.prefix+"*", 500).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("lỗi scan keys: %w", err)
	}
	return keys, nil
}

// Clear xóa toàn bộ cache
func (rcs *RedisCacheService) Clear(ctx context.Context) error {
	keys, err := rcs.scanKeys(ctx)
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		if err := rcs.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("lỗi xóa keys: %w", err)
		}
	}

	rcs.logger.Info("Đã clear Redis cache", zap.Int("keys_deleted", len(keys)))
	return nil
}

// InvalidateByGazetteerVersion Redis không lưu version trong key nên clear all
func (rcs *RedisCacheService) InvalidateByGazetteerVersion(ctx context.Context, gazetteerVersion string) error {
	return rcs.Clear(ctx)
}

// GetStats lấy thống kê cache
func (rcs *RedisCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits, misses := rcs.hits.Load(), rcs.misses.Load()

	totalItems := int64(0)
	if keys, err := rcs.scanKeys(ctx); err == nil {
		totalItems = int64(len(keys))
	} else {
		rcs.logger.Warn("Không thể đếm keys Redis", zap.Error(err))
	}

	return &CacheStats{
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: totalItems,
	}, nil
}

// Close đóng kết nối Redis
func (rcs *RedisCacheService) Close() error {
	return rcs.client.Close()
}
