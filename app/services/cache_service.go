package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/listing-resolver/app/models"
)

type memoryEntry struct {
	breadcrumb *models.Breadcrumb
	storedAt   time.Time
}

// CacheService cache breadcrumb in-memory có TTL
type CacheService struct {
	entries map[string]memoryEntry
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCacheService tạo mới CacheService
func NewCacheService(ttl time.Duration) *CacheService {
	return &CacheService{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get lấy breadcrumb từ cache
func (cs *CacheService) Get(ctx context.Context, key string) (*models.Breadcrumb, bool, error) {
	cs.mu.RLock()
	entry, exists := cs.entries[key]
	cs.mu.RUnlock()

	if !exists || cs.isExpired(entry) {
		cs.misses.Add(1)
		return nil, false, nil
	}

	cs.hits.Add(1)
	crumb := *entry.breadcrumb
	return &crumb, true, nil
}

// Set lưu breadcrumb vào cache
func (cs *CacheService) Set(ctx context.Context, key string, breadcrumb *models.Breadcrumb) error {
	if breadcrumb == nil {
		return nil
	}
	crumb := *breadcrumb

	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.entries[key] = memoryEntry{breadcrumb: &crumb, storedAt: cs.now()}
	return nil
}

// Delete xóa item khỏi cache
func (cs *CacheService) Delete(ctx context.Context, key string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	delete(cs.entries, key)
	return nil
}

// Clear xóa toàn bộ cache
func (cs *CacheService) Clear(ctx context.Context) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.entries = make(map[string]memoryEntry)
	return nil
}

// InvalidateByGazetteerVersion cache in-memory không lưu version nên xóa hết
func (cs *CacheService) InvalidateByGazetteerVersion(ctx context.Context, gazetteerVersion string) error {
	return cs.Clear(ctx)
}

// Size lấy kích thước cache
func (cs *CacheService) Size() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	return len(cs.entries)
}

// GetStats lấy thống kê cache
func (cs *CacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits, misses := cs.hits.Load(), cs.misses.Load()
	return &CacheStats{
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(cs.Size()),
	}, nil
}

// CleanupExpired xóa các item hết hạn
func (cs *CacheService) CleanupExpired() int {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	removed := 0
	for key, entry := range cs.entries {
		if cs.isExpired(entry) {
			delete(cs.entries, key)
			removed++
		}
	}
	return removed
}

// isExpired ttl <= 0 nghĩa là không hết hạn
func (cs *CacheService) isExpired(entry memoryEntry) bool {
	if cs.ttl <= 0 {
		return false
	}
	return cs.now().Sub(entry.storedAt) > cs.ttl
}

// StartCleanupWorker khởi động worker dọn dẹp cache, dừng khi ctx bị hủy
func (cs *CacheService) StartCleanupWorker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cs.CleanupExpired()
			}
		}
	}()
}

// Close đóng kết nối (không cần thiết cho in-memory cache)
func (cs *CacheService) Close() error {
	return nil
}
