package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/listing-resolver/app/controllers"
	"github.com/listing-resolver/app/services"
	"github.com/listing-resolver/helpers/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	pages := services.NewPageService(nil, nil, 20, zap.NewNop())
	SetupAllRoutes(r, controllers.NewPageController(pages, zap.NewNop()), nil, zap.NewNop())
	return r
}

func TestRequestID(t *testing.T) {
	r := newTestEngine()

	t.Run("Generated when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, utils.IsValidUUID(w.Header().Get(utils.RequestIDHeader)))
	})

	t.Run("Valid incoming id is kept", func(t *testing.T) {
		id := utils.GenerateUUID()
		req := httptest.NewRequest(http.MethodGet, "/live", nil)
		req.Header.Set(utils.RequestIDHeader, id)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, id, w.Header().Get(utils.RequestIDHeader))
	})

	t.Run("Garbage incoming id is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		req.Header.Set(utils.RequestIDHeader, "<script>")

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.NotEqual(t, "<script>", w.Header().Get(utils.RequestIDHeader))
	})
}

func TestRoutes_NotFoundPageCarriesRequestID(t *testing.T) {
	r := newTestEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/pages/random/garbage", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), w.Header().Get(utils.RequestIDHeader))
}

func TestRoutes_UnknownRoute(t *testing.T) {
	r := newTestEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Route not found")
}
