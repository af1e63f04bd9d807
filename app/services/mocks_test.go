package services_test

import (
	"context"

	"github.com/listing-resolver/app/models"
	"github.com/listing-resolver/app/services"
	"github.com/listing-resolver/internal/router"
	"github.com/stretchr/testify/mock"
)

type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) GetPostByID(ctx context.Context, id string) (*services.PostResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.PostResponse), args.Error(1)
}

func (m *MockContentService) SearchPosts(ctx context.Context, filters router.SearchFilters, page, pageSize int) (*services.SearchResponse, error) {
	args := m.Called(ctx, filters, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SearchResponse), args.Error(1)
}

func (m *MockContentService) IncrementViews(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

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

type MockUnitFinder struct {
	mock.Mock
}

func (m *MockUnitFinder) FindByKey(ctx context.Context, level int, parentCode, key string) (*models.AdminUnit, error) {
	args := m.Called(ctx, level, parentCode, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AdminUnit), args.Error(1)
}

func (m *MockUnitFinder) SearchCandidates(ctx context.Context, level int, parentCode, query string) ([]models.AdminUnit, error) {
	args := m.Called(ctx, level, parentCode, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AdminUnit), args.Error(1)
}

func postResponse(post *models.Post) *services.PostResponse {
	resp := &services.PostResponse{Success: post != nil}
	resp.Data.Post = post
	return resp
}
