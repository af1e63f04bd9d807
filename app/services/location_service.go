package services

import (
	"context"
	"fmt"
	"time"

	"github.com/listing-resolver/app/models"
	"github.com/listing-resolver/internal/breadcrumb"
	"github.com/listing-resolver/internal/normalizer"
	"github.com/listing-resolver/internal/search"
	"go.uber.org/zap"
)

// LocationService dịch vụ địa danh cho breadcrumb
type LocationService = breadcrumb.LocationService

// UnitFinder tra cứu gazetteer
type UnitFinder interface {
	FindByKey(ctx context.Context, level int, parentCode, key string) (*models.AdminUnit, error)
	SearchCandidates(ctx context.Context, level int, parentCode, query string) ([]models.AdminUnit, error)
}

// GazetteerLocationService LocationService dựa trên gazetteer 2 cấp
type GazetteerLocationService struct {
	finder         UnitFinder
	cache          BreadcrumbCache
	fuzzyThreshold float64
	timeout        time.Duration
	logger         *zap.Logger
}

// LocationConfig cấu hình GazetteerLocationService
type LocationConfig struct {
	FuzzyThreshold float64
	Timeout        time.Duration
}

// NewGazetteerLocationService tạo mới GazetteerLocationService; cache có thể nil
func NewGazetteerLocationService(finder UnitFinder, cache BreadcrumbCache, cfg LocationConfig, logger *zap.Logger) *GazetteerLocationService {
	if cfg.FuzzyThreshold <= 0 {
		cfg.FuzzyThreshold = 0.85
	}
	return &GazetteerLocationService{
		finder:         finder,
		cache:          cache,
		fuzzyThreshold: cfg.FuzzyThreshold,
		timeout:        cfg.Timeout,
		logger:         logger,
	}
}

// GetBreadcrumbFromSlug tên hiển thị cho tỉnh/xã. Trả (nil, nil) khi không biết tỉnh.
func (ls *GazetteerLocationService) GetBreadcrumbFromSlug(ctx context.Context, provinceCode string, districtCode *string, wardCode string) (*models.Breadcrumb, error) {
	if provinceCode == "" {
		return nil, nil
	}
	if ls.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ls.timeout)
		defer cancel()
	}

	key := BreadcrumbCacheKey(provinceCode, wardCode)
	if ls.cache != nil {
		cached, found, err := ls.cache.Get(ctx, key)
		if err != nil {
			ls.logger.Warn("Lỗi đọc cache breadcrumb", zap.Error(err), zap.String("key", key))
		} else if found {
			return cached, nil
		}
	}

	province, err := ls.lookup(ctx, models.LevelProvinceUnit, "", provinceCode)
	if err != nil {
		return nil, fmt.Errorf("lỗi tra cứu tỉnh %q: %w", provinceCode, err)
	}
	if province == nil {
		return nil, nil
	}

	crumb := &models.Breadcrumb{City: province.DisplayName()}
	if wardCode != "" {
		ward, err := ls.lookup(ctx, models.LevelWardUnit, province.Code, wardCode)
		if err != nil {
			return nil, fmt.Errorf("lỗi tra cứu xã %q: %w", wardCode, err)
		}
		if ward != nil {
			crumb.Ward = ward.DisplayName()
		} else {
			crumb.Ward = normalizer.NormalizeAdminName(wardCode, normalizer.UnitWard)
		}
	}

	if ls.cache != nil {
		if err := ls.cache.Set(ctx, key, crumb); err != nil {
			ls.logger.Warn("Lỗi ghi cache breadcrumb", zap.Error(err), zap.String("key", key))
		}
	}
	return crumb, nil
}

// lookup khớp chính xác slug/mã trước, sau đó fuzzy trên các ứng viên full-text
func (ls *GazetteerLocationService) lookup(ctx context.Context, level int, parentCode, code string) (*models.AdminUnit, error) {
	unit, err := ls.finder.FindByKey(ctx, level, parentCode, code)
	if err != nil {
		return nil, err
	}
	if unit != nil {
		return unit, nil
	}

	kind := normalizer.UnitWard
	if level == models.LevelProvinceUnit {
		kind = normalizer.UnitProvince
	}
	stripped := normalizer.StripAdminPrefix(code, kind)

	candidates, err := ls.finder.SearchCandidates(ctx, level, parentCode, stripped)
	if err != nil {
		return nil, err
	}

	best, score := search.BestMatch(stripped, candidates, kind, ls.fuzzyThreshold)
	if best != nil {
		ls.logger.Debug("Khớp fuzzy đơn vị hành chính",
			zap.String("code", code),
			zap.String("matched", best.Code),
			zap.Float64("score", score))
	}
	return best, nil
}
