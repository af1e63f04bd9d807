// Package breadcrumb dịch mã/slug đơn vị hành chính thành tên hiển thị cho breadcrumb
package breadcrumb

import (
	"context"

	"github.com/listing-resolver/app/models"
	"github.com/listing-resolver/internal/normalizer"
	"go.uber.org/zap"
)

// LocationService dịch vụ địa danh. districtCode luôn nil trong mô hình 2 cấp.
// Có thể trả (nil, nil) khi không tìm thấy.
type LocationService interface {
	GetBreadcrumbFromSlug(ctx context.Context, provinceCode string, districtCode *string, wardCode string) (*models.Breadcrumb, error)
}

// Resolver resolves display names and never fails: when the location service errors
// or has no answer, the slugs are humanized locally.
type Resolver struct {
	locations LocationService
	logger    *zap.Logger
}

// NewResolver tạo mới Resolver
func NewResolver(locations LocationService, logger *zap.Logger) *Resolver {
	return &Resolver{
		locations: locations,
		logger:    logger,
	}
}

// Fallback breadcrumb dự phòng tính từ slug
func Fallback(provinceCode, wardCode string) models.Breadcrumb {
	return models.Breadcrumb{
		City: normalizer.NormalizeAdminName(provinceCode, normalizer.UnitProvince),
		Ward: normalizer.NormalizeAdminName(wardCode, normalizer.UnitWard),
	}
}

// Resolve lấy tên hiển thị cho tỉnh/xã
func (r *Resolver) Resolve(ctx context.Context, provinceCode, wardCode string) models.Breadcrumb {
	if provinceCode == "" && wardCode == "" {
		return models.Breadcrumb{}
	}
	if r.locations == nil {
		return Fallback(provinceCode, wardCode)
	}

	result, err := r.locations.GetBreadcrumbFromSlug(ctx, provinceCode, nil, wardCode)
	if err != nil {
		r.logger.Warn("Location service lỗi, dùng tên dự phòng",
			zap.Error(err),
			zap.String("province", provinceCode),
			zap.String("ward", wardCode))
		return Fallback(provinceCode, wardCode)
	}
	if result == nil {
		r.logger.Debug("Location service không có kết quả, dùng tên dự phòng",
			zap.String("province", provinceCode),
			zap.String("ward", wardCode))
		return Fallback(provinceCode, wardCode)
	}

	return *result
}
