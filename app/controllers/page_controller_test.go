package controllers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/listing-resolver/app/controllers"
	"github.com/listing-resolver/app/models"
	"github.com/listing-resolver/app/services"
	"github.com/listing-resolver/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPageResolver struct {
	mock.Mock
}

func (m *MockPageResolver) Resolve(ctx context.Context, segments []string, query router.QueryParams, page int) (*services.PageResult, error) {
	args := m.Called(ctx, segments, query, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.PageResult), args.Error(1)
}

func (m *MockPageResolver) Classify(segments []string) (models.RouteClassification, int) {
	return router.ClassifyWithRule(segments)
}

func setupRouter(pages *MockPageResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	pc := controllers.NewPageController(pages, zap.NewNop())
	r.GET("/v1/pages/*path", pc.ResolvePage)
	r.GET("/v1/routes/classify", pc.ClassifyRoute)
	return r
}

func TestPageController_ResolvePage_Listing(t *testing.T) {
	pages := new(MockPageResolver)
	r := setupRouter(pages)

	listing := models.PropertyListing{
		TransactionType: "mua-ban",
		Location:        models.ListingLocation{Province: "ha-noi"},
		Level:           models.LevelProvince,
	}
	pages.On("Resolve", mock.Anything, []string{"mua-ban", "ha-noi"}, router.QueryParams{"bedrooms": "3"}, 2).
		Return(&services.PageResult{
			Classification: listing,
			Rule:           5,
			Filters:        router.SearchFilters{"status": "active"},
			Breadcrumb:     &models.BreadcrumbData{City: "Hà Nội"},
			Page:           2,
			PageSize:       20,
		}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/pages/mua-ban/ha-noi?bedrooms=3&page=2&utm_source=x", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "property_listing", body["kind"])
	assert.Equal(t, float64(5), body["rule"])
	assert.Equal(t, []interface{}{}, body["posts"], "listing always carries a posts array")
	assert.Equal(t, "province", body["classification"].(map[string]interface{})["level"])
	assert.Equal(t, "", body["breadcrumb"].(map[string]interface{})["district"])
	assert.Equal(t, float64(2), body["pagination"].(map[string]interface{})["page"])
	pages.AssertExpectations(t)
}

func TestPageController_ResolvePage_NotFound(t *testing.T) {
	pages := new(MockPageResolver)
	r := setupRouter(pages)

	pages.On("Resolve", mock.Anything, []string{"random", "garbage"}, router.QueryParams{}, 1).
		Return(nil, services.ErrNotFound)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/pages/random/garbage", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestPageController_ResolvePage_UnexpectedError(t *testing.T) {
	pages := new(MockPageResolver)
	r := setupRouter(pages)

	pages.On("Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("mongo: connection reset"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/pages/mua-ban/chi-tiet/42", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "mongo", "internal errors are not leaked")
}

func TestPageController_ResolvePage_DetailHasNoPostsField(t *testing.T) {
	pages := new(MockPageResolver)
	r := setupRouter(pages)

	pages.On("Resolve", mock.Anything, []string{"mua-ban", "chi-tiet", "42"}, router.QueryParams{}, 1).
		Return(&services.PageResult{
			Classification: models.PropertyDetail{ID: "42", TransactionType: "mua-ban", Format: models.FormatFallback},
			Rule:           1,
			Post:           &models.Post{Title: "Nhà phố"},
			Breadcrumb:     &models.BreadcrumbData{City: "Hà Nội", Ward: "Ba Đình"},
		}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/pages/mua-ban/chi-tiet/42?page=abc", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotContains(t, body, "posts")
	assert.Equal(t, "Nhà phố", body["post"].(map[string]interface{})["title"])
	assert.Equal(t, "fallback", body["classification"].(map[string]interface{})["format"])
}

func TestPageController_ClassifyRoute(t *testing.T) {
	r := setupRouter(new(MockPageResolver))

	tests := []struct {
		path     string
		wantKind string
		wantRule float64
	}{
		{"/mua-ban/tinh-ha-nam/xa-thanh-liem", "property_listing", 3},
		{"/du-an/da-nang", "project_listing", 8},
		{"/mua-ban/ha-noi/cau-giay/68f1a2b3c4d5e6f7a8b9c0d1", "property_detail", 2},
		{"/random/garbage", "not_found", 9},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/routes/classify?path="+tt.path, nil))
			require.Equal(t, http.StatusOK, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantKind, body["kind"])
			assert.Equal(t, tt.wantRule, body["rule"])
		})
	}

	t.Run("missing path", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/routes/classify", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
