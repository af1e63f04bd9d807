package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/listing-resolver/app/models"
	"github.com/listing-resolver/app/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	haNoi   = &models.AdminUnit{Code: "01", Level: models.LevelProvinceUnit, Name: "Thành phố Hà Nội", ShortName: "Hà Nội", Slug: "thanh-pho-ha-noi"}
	cauGiay = &models.AdminUnit{Code: "00166", ParentCode: "01", Level: models.LevelWardUnit, Name: "Phường Cầu Giấy", ShortName: "Cầu Giấy", Slug: "phuong-cau-giay"}
)

func newLocationService(finder *MockUnitFinder, cache services.BreadcrumbCache) *services.GazetteerLocationService {
	return services.NewGazetteerLocationService(finder, cache, services.LocationConfig{FuzzyThreshold: 0.85}, zap.NewNop())
}

func TestGazetteerLocationService_ExactMatch(t *testing.T) {
	finder := new(MockUnitFinder)
	cache := services.NewCacheService(time.Hour)
	ls := newLocationService(finder, cache)

	finder.On("FindByKey", mock.Anything, models.LevelProvinceUnit, "", "ha-noi").Return(haNoi, nil).Once()
	finder.On("FindByKey", mock.Anything, models.LevelWardUnit, "01", "cau-giay").Return(cauGiay, nil).Once()

	crumb, err := ls.GetBreadcrumbFromSlug(context.Background(), "ha-noi", nil, "cau-giay")
	require.NoError(t, err)
	assert.Equal(t, &models.Breadcrumb{City: "Hà Nội", Ward: "Cầu Giấy"}, crumb)

	// lần 2 lấy từ cache
	crumb, err = ls.GetBreadcrumbFromSlug(context.Background(), "ha-noi", nil, "cau-giay")
	require.NoError(t, err)
	assert.Equal(t, "Cầu Giấy", crumb.Ward)

	finder.AssertExpectations(t)
	assert.Equal(t, 1, cache.Size())
}

func TestGazetteerLocationService_FuzzyWard(t *testing.T) {
	finder := new(MockUnitFinder)
	ls := newLocationService(finder, nil)

	finder.On("FindByKey", mock.Anything, models.LevelProvinceUnit, "", "ha-noi").Return(haNoi, nil)
	finder.On("FindByKey", mock.Anything, models.LevelWardUnit, "01", "phuong-cau-giy").Return(nil, nil)
	finder.On("SearchCandidates", mock.Anything, models.LevelWardUnit, "01", "cau-giy").
		Return([]models.AdminUnit{*cauGiay}, nil)

	crumb, err := ls.GetBreadcrumbFromSlug(context.Background(), "ha-noi", nil, "phuong-cau-giy")
	require.NoError(t, err)
	assert.Equal(t, "Cầu Giấy", crumb.Ward)
}

func TestGazetteerLocationService_UnknownWardIsHumanized(t *testing.T) {
	finder := new(MockUnitFinder)
	ls := newLocationService(finder, nil)

	finder.On("FindByKey", mock.Anything, models.LevelProvinceUnit, "", "ha-noi").Return(haNoi, nil)
	finder.On("FindByKey", mock.Anything, models.LevelWardUnit, "01", "xa-moi-lap").Return(nil, nil)
	finder.On("SearchCandidates", mock.Anything, models.LevelWardUnit, "01", "moi-lap").Return([]models.AdminUnit{}, nil)

	crumb, err := ls.GetBreadcrumbFromSlug(context.Background(), "ha-noi", nil, "xa-moi-lap")
	require.NoError(t, err)
	assert.Equal(t, &models.Breadcrumb{City: "Hà Nội", Ward: "Moi Lap"}, crumb)
}

func TestGazetteerLocationService_UnknownProvince(t *testing.T) {
	finder := new(MockUnitFinder)
	ls := newLocationService(finder, nil)

	finder.On("FindByKey", mock.Anything, models.LevelProvinceUnit, "", "atlantis").Return(nil, nil)
	finder.On("SearchCandidates", mock.Anything, models.LevelProvinceUnit, "", "atlantis").
		Return([]models.AdminUnit{*haNoi}, nil)

	crumb, err := ls.GetBreadcrumbFromSlug(context.Background(), "atlantis", nil, "")
	require.NoError(t, err)
	assert.Nil(t, crumb)
}

func TestGazetteerLocationService_FinderError(t *testing.T) {
	finder := new(MockUnitFinder)
	ls := newLocationService(finder, nil)

	finder.On("FindByKey", mock.Anything, models.LevelProvinceUnit, "", "ha-noi").Return(nil, errors.New("meilisearch down"))

	crumb, err := ls.GetBreadcrumbFromSlug(context.Background(), "ha-noi", nil, "cau-giay")
	assert.Error(t, err)
	assert.Nil(t, crumb)
}

func TestGazetteerLocationService_EmptyProvince(t *testing.T) {
	finder := new(MockUnitFinder)
	ls := newLocationService(finder, nil)

	crumb, err := ls.GetBreadcrumbFromSlug(context.Background(), "", nil, "cau-giay")
	assert.NoError(t, err)
	assert.Nil(t, crumb)
	finder.AssertNotCalled(t, "FindByKey", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
