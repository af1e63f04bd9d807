package services

import (
	"context"
	"fmt"

	"github.com/listing-resolver/app/models"
)

// CacheStats thống kê cache
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// BreadcrumbCache cache breadcrumb theo cặp (tỉnh, xã)
type BreadcrumbCache interface {
	// Get lấy breadcrumb từ cache
	Get(ctx context.Context, key string) (*models.Breadcrumb, bool, error)

	// Set lưu breadcrumb vào cache
	Set(ctx context.Context, key string, breadcrumb *models.Breadcrumb) error

	// Delete xóa breadcrumb khỏi cache
	Delete(ctx context.Context, key string) error

	// Clear xóa tất cả cache
	Clear(ctx context.Context) error

	// InvalidateByGazetteerVersion xóa các entry không thuộc gazetteer version hiện tại
	InvalidateByGazetteerVersion(ctx context.Context, gazetteerVersion string) error

	GetStats(ctx context.Context) (*CacheStats, error)

	// Close đóng kết nối (nếu cần)
	Close() error
}

// BreadcrumbCacheKey breadcrumb:<tỉnh>:<xã>
func BreadcrumbCacheKey(provinceCode, wardCode string) string {
	return fmt.Sprintf("breadcrumb:%s:%s", provinceCode, wardCode)
}

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
