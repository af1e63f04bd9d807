package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/listing-resolver/app/models"
	"github.com/listing-resolver/app/responses"
	"github.com/listing-resolver/app/services"
	"github.com/listing-resolver/internal/router"
	"go.uber.org/zap"
)

// RequestIDKey key của request id trong gin.Context
const RequestIDKey = "request_id"

// PageResolver điều phối trang
type PageResolver interface {
	Resolve(ctx context.Context, segments []string, query router.QueryParams, page int) (*services.PageResult, error)
	Classify(segments []string) (models.RouteClassification, int)
}

// PageController controller xử lý request trang
type PageController struct {
	pages     PageResolver
	logger    *zap.Logger
	startTime time.Time
}

// NewPageController tạo mới PageController
func NewPageController(pages PageResolver, logger *zap.Logger) *PageController {
	return &PageController{
		pages:     pages,
		logger:    logger,
		startTime: time.Now(),
	}
}

// parsePage page từ query, mặc định 1
func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func errorResponse(c *gin.Context, status int, code, message string) {
	c.JSON(status, responses.ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: c.GetString(RequestIDKey),
	})
}

// ResolvePage GET /v1/pages/*path
func (pc *PageController) ResolvePage(c *gin.Context) {
	segments := router.SplitSegments(c.Param("path"))
	query := router.NewQueryParams(c.Request.URL.Query())
	page := parsePage(c.Query("page"))

	result, err := pc.pages.Resolve(c.Request.Context(), segments, query, page)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, "NOT_FOUND", "Không tìm thấy trang")
			return
		}
		pc.logger.Error("Lỗi xử lý trang",
			zap.Error(err),
			zap.Strings("segments", segments),
			zap.String("request_id", c.GetString(RequestIDKey)))
		errorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Đã có lỗi xảy ra, vui lòng thử lại sau")
		return
	}

	resp := responses.PageResponse{
		Kind:           result.Kind(),
		Rule:           result.Rule,
		Classification: result.Classification,
		Post:           result.Post,
		Breadcrumb:     result.Breadcrumb,
		RequestID:      c.GetString(RequestIDKey),
	}
	if result.Kind() == models.KindPropertyListing {
		posts := result.Posts
		if posts == nil {
			posts = []models.Post{}
		}
		resp.Posts = &posts
		resp.Filters = result.Filters
		resp.Pagination = &responses.Pagination{Page: result.Page, PageSize: result.PageSize}
	}

	c.JSON(http.StatusOK, resp)
}

// ClassifyRoute GET /v1/routes/classify?path=/a/b/c, không gọi dịch vụ ngoài
func (pc *PageController) ClassifyRoute(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		errorResponse(c, http.StatusBadRequest, "MISSING_PATH", "Thiếu tham số path")
		return
	}

	segments := router.SplitSegments(path)
	route, rule := pc.pages.Classify(segments)

	if segments == nil {
		segments = []string{}
	}
	c.JSON(http.StatusOK, responses.ClassifyResponse{
		Path:           path,
		Segments:       segments,
		Kind:           route.Kind(),
		Rule:           rule,
		Classification: route,
	})
}

// HealthCheck kiểm tra sức khỏe service
func (pc *PageController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(pc.startTime).Round(time.Second).String(),
		Version:   "1.0.0",
	})
}
