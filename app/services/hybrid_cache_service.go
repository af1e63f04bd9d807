package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/listing-resolver/app/models"
	"go.uber.org/zap"
)

// HybridCacheService cache kết hợp Redis (L1) + MongoDB (L2)
type HybridCacheService struct {
	redisCache BreadcrumbCache
	mongoCache BreadcrumbCache
	logger     *zap.Logger
}

// NewHybridCacheService tạo mới hybrid cache service
func NewHybridCacheService(redisCache, mongoCache BreadcrumbCache, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{
		redisCache: redisCache,
		mongoCache: mongoCache,
		logger:     logger,
	}
}

// both chạy op trên cả 2 tầng song song và gộp lỗi
func (hcs *HybridCacheService) both(op func(BreadcrumbCache) error) error {
	errCh := make(chan error, 2)
	for _, c := range []BreadcrumbCache{hcs.redisCache, hcs.mongoCache} {
		go func(c BreadcrumbCache) {
			errCh <- op(c)
		}(c)
	}

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Get lấy breadcrumb từ cache (Redis trước, MongoDB sau)
func (hcs *HybridCacheService) Get(ctx context.Context, key string) (*models.Breadcrumb, bool, error) {
	crumb, found, err := hcs.redisCache.Get(ctx, key)
	if err != nil {
		hcs.logger.Warn("Lỗi Redis cache, fallback MongoDB", zap.Error(err))
	} else if found {
		return crumb, true, nil
	}

	crumb, found, err = hcs.mongoCache.Get(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}

	// đồng bộ lên Redis
	go func(crumb models.Breadcrumb) {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := hcs.redisCache.Set(bgCtx, key, &crumb); err != nil {
			hcs.logger.Warn("Lỗi sync MongoDB->Redis", zap.Error(err), zap.String("key", key))
		}
	}(*crumb)

	return crumb, true, nil
}

// Set lưu breadcrumb vào cả Redis và MongoDB
func (hcs *HybridCacheService) Set(ctx context.Context, key string, breadcrumb *models.Breadcrumb) error {
	if err := hcs.both(func(c BreadcrumbCache) error { return c.Set(ctx, key, breadcrumb) }); err != nil {
		return fmt.Errorf("cache errors: %w", err)
	}
	return nil
}

// Delete xóa key khỏi cả 2 cache
func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	if err := hcs.both(func(c BreadcrumbCache) error { return c.Delete(ctx, key) }); err != nil {
		return fmt.Errorf("delete errors: %w", err)
	}
	return nil
}

// Clear xóa toàn bộ cache
func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	if err := hcs.both(func(c BreadcrumbCache) error { return c.Clear(ctx) }); err != nil {
		return fmt.Errorf("clear errors: %w", err)
	}
	hcs.logger.Info("Cleared hybrid cache (Redis + MongoDB)")
	return nil
}

// InvalidateByGazetteerVersion xóa cache theo phiên bản gazetteer
func (hcs *HybridCacheService) InvalidateByGazetteerVersion(ctx context.Context, gazetteerVersion string) error {
	err := hcs.both(func(c BreadcrumbCache) error { return c.InvalidateByGazetteerVersion(ctx, gazetteerVersion) })
	if err != nil {
		return fmt.Errorf("invalidate errors: %w", err)
	}
	hcs.logger.Info("Invalidated hybrid cache", zap.String("gazetteer_version", gazetteerVersion))
	return nil
}

// GetStats gộp thống kê từ cả 2 tầng
func (hcs *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	redisStats, redisErr := hcs.redisCache.GetStats(ctx)
	mongoStats, mongoErr := hcs.mongoCache.GetStats(ctx)

	switch {
	case redisErr != nil && mongoErr != nil:
		return nil, fmt.Errorf("cả Redis và MongoDB đều lỗi: %w", errors.Join(redisErr, mongoErr))
	case redisErr != nil:
		return mongoStats, nil
	case mongoErr != nil:
		return redisStats, nil
	}

	hits := redisStats.TotalHits + mongoStats.TotalHits
	misses := redisStats.TotalMiss + mongoStats.TotalMiss
	return &CacheStats{
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: redisStats.TotalItems + mongoStats.TotalItems,
	}, nil
}

// Close đóng kết nối cả 2 cache
func (hcs *HybridCacheService) Close() error {
	if err := hcs.both(func(c BreadcrumbCache) error { return c.Close() }); err != nil {
		return fmt.Errorf("close errors: %w", err)
	}
	return nil
}
