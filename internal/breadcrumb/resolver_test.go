package breadcrumb_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/listing-resolver/app/models"
	"github.com/listing-resolver/internal/breadcrumb"
	"github.com/listing-resolver/internal/normalizer"
)

// MockLocationService is a mock of LocationService
type MockLocationService struct {
	mock.Mock
}

func (m *MockLocationService) GetBreadcrumbFromSlug(ctx context.Context, provinceCode string, districtCode *string, wardCode string) (*models.Breadcrumb, error) {
	args := m.Called(ctx, provinceCode, districtCode, wardCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Breadcrumb), args.Error(1)
}

func TestResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	var noDistrict *string

	t.Run("service result is used as is", func(t *testing.T) {
		svc := &MockLocationService{}
		svc.On("GetBreadcrumbFromSlug", ctx, "ha-nam", noDistrict, "thanh-liem").
			Return(&models.Breadcrumb{City: "Hà Nam", Ward: "Thanh Liêm"}, nil)

		r := breadcrumb.NewResolver(svc, zap.NewNop())
		got := r.Resolve(ctx, "ha-nam", "thanh-liem")

		assert.Equal(t, models.Breadcrumb{City: "Hà Nam", Ward: "Thanh Liêm"}, got)
		svc.AssertExpectations(t)
	})

	t.Run("service error degrades to normalizer output", func(t *testing.T) {
		svc := &MockLocationService{}
		svc.On("GetBreadcrumbFromSlug", ctx, "tinh-ha-nam", noDistrict, "xa-thanh-liem").
			Return(nil, errors.New("connection refused"))

		r := breadcrumb.NewResolver(svc, zap.NewNop())
		got := r.Resolve(ctx, "tinh-ha-nam", "xa-thanh-liem")

		assert.Equal(t, models.Breadcrumb{
			City: normalizer.NormalizeAdminName("tinh-ha-nam", normalizer.UnitProvince),
			Ward: normalizer.NormalizeAdminName("xa-thanh-liem", normalizer.UnitWard),
		}, got)
		assert.Equal(t, "Ha Nam", got.City)
		assert.Equal(t, "Thanh Liem", got.Ward)
	})

	t.Run("nil result degrades to normalizer output", func(t *testing.T) {
		svc := &MockLocationService{}
		svc.On("GetBreadcrumbFromSlug", ctx, "thanh-pho-da-nang", noDistrict, "").
			Return(nil, nil)

		r := breadcrumb.NewResolver(svc, zap.NewNop())
		got := r.Resolve(ctx, "thanh-pho-da-nang", "")

		assert.Equal(t, models.Breadcrumb{City: "Da Nang", Ward: ""}, got)
	})

	t.Run("no location skips the service", func(t *testing.T) {
		svc := &MockLocationService{}

		r := breadcrumb.NewResolver(svc, zap.NewNop())
		got := r.Resolve(ctx, "", "")

		assert.Equal(t, models.Breadcrumb{}, got)
		svc.AssertNotCalled(t, "GetBreadcrumbFromSlug", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("nil service uses fallback", func(t *testing.T) {
		r := breadcrumb.NewResolver(nil, zap.NewNop())
		assert.Equal(t, breadcrumb.Fallback("ha-noi", "phuong-dich-vong"), r.Resolve(ctx, "ha-noi", "phuong-dich-vong"))
	})
}

func TestBreadcrumb_ToDataKeepsEmptyDistrict(t *testing.T) {
	data := breadcrumb.Fallback("tinh-ha-nam", "xa-thanh-liem").ToData()
	assert.Equal(t, models.BreadcrumbData{City: "Ha Nam", District: "", Ward: "Thanh Liem"}, data)
}
