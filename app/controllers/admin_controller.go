package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/listing-resolver/app/requests"
	"github.com/listing-resolver/app/responses"
	"github.com/listing-resolver/app/services"
	"go.uber.org/zap"
)

// AdminController controller xử lý các request admin
type AdminController struct {
	adminService *services.AdminService
	logger       *zap.Logger
}

// NewAdminController tạo mới AdminController
func NewAdminController(adminService *services.AdminService, logger *zap.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// SeedUnits POST /v1/admin/units, ?dry_run=true chỉ validate
func (ac *AdminController) SeedUnits(c *gin.Context) {
	var req requests.SeedUnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Request không hợp lệ: "+err.Error())
		return
	}

	units := services.PrepareUnits(req.Data)
	validation := services.ValidateUnits(units)

	if c.Query("dry_run") == "true" {
		c.JSON(http.StatusOK, responses.SeedResponse{
			ValidationPassed: validation.Passed,
			Warnings:         validation.Warnings,
			DryRun:           true,
			Message:          "Validation hoàn thành",
		})
		return
	}

	if !validation.Passed {
		c.JSON(http.StatusUnprocessableEntity, responses.SeedResponse{
			ValidationPassed: false,
			Warnings:         validation.Warnings,
			Message:          "Dữ liệu gazetteer không hợp lệ",
		})
		return
	}

	result, err := ac.adminService.SeedUnits(c.Request.Context(), req.GazetteerVersion, units)
	if err != nil {
		ac.logger.Error("Lỗi seed gazetteer", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "SEED_ERROR", "Lỗi seed gazetteer: "+err.Error())
		return
	}

	ac.logger.Info("Seed gazetteer thành công",
		zap.String("version", req.GazetteerVersion),
		zap.Int("records", result.UnitsProcessed))

	c.JSON(http.StatusOK, responses.SeedResponse{
		ValidationPassed: true,
		UnitsProcessed:   result.UnitsProcessed,
		IndexesBuilt:     result.IndexesBuilt,
		ProcessingTimeMs: result.ProcessingTimeMs,
		Message:          "Seed gazetteer thành công",
	})
}

// SeedPosts POST /v1/admin/posts
func (ac *AdminController) SeedPosts(c *gin.Context) {
	var req requests.SeedPostsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Request không hợp lệ: "+err.Error())
		return
	}

	result, err := ac.adminService.SeedPosts(c.Request.Context(), req.Data)
	if err != nil {
		ac.logger.Error("Lỗi seed tin đăng", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "SEED_ERROR", "Lỗi seed tin đăng: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, responses.SeedResponse{
		ValidationPassed: true,
		PostsProcessed:   result.PostsProcessed,
		IndexesBuilt:     result.IndexesBuilt,
		ProcessingTimeMs: result.ProcessingTimeMs,
		Message:          "Seed tin đăng thành công",
	})
}

// InvalidateCache POST /v1/admin/cache/invalidate
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	var req requests.InvalidateCacheRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Request không hợp lệ: "+err.Error())
			return
		}
	}
	if v := c.Query("gazetteer_version"); v != "" {
		req.GazetteerVersion = v
	}

	startTime := time.Now()
	if err := ac.adminService.InvalidateBreadcrumbs(c.Request.Context(), req.GazetteerVersion); err != nil {
		ac.logger.Error("Lỗi invalidate cache", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "INVALIDATE_ERROR", "Lỗi invalidate cache: "+err.Error())
		return
	}

	processingTime := time.Since(startTime)
	ac.logger.Info("Invalidate cache thành công",
		zap.String("version", req.GazetteerVersion),
		zap.Duration("duration", processingTime))

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "Invalidate cache thành công",
		Data: map[string]interface{}{
			"gazetteer_version":  req.GazetteerVersion,
			"processing_time_ms": processingTime.Milliseconds(),
		},
	})
}

// GetStats GET /v1/admin/stats
func (ac *AdminController) GetStats(c *gin.Context) {
	stats, err := ac.adminService.GetSystemStats(c.Request.Context())
	if err != nil {
		ac.logger.Error("Lỗi lấy stats", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "STATS_ERROR", "Lỗi lấy stats: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, stats)
}

// BuildIndexes POST /v1/admin/indexes/build
func (ac *AdminController) BuildIndexes(c *gin.Context) {
	startTime := time.Now()

	if err := ac.adminService.BuildIndexes(); err != nil {
		ac.logger.Error("Lỗi build indexes", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "BUILD_ERROR", "Lỗi build indexes: "+err.Error())
		return
	}

	processingTime := time.Since(startTime)
	ac.logger.Info("Build indexes thành công", zap.Duration("duration", processingTime))

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "Build indexes thành công",
		Data: map[string]interface{}{
			"processing_time_ms": processingTime.Milliseconds(),
		},
	})
}

// ReindexPosts POST /v1/admin/posts/reindex, ?since=RFC3339 giới hạn theo updated_at
func (ac *AdminController) ReindexPosts(c *gin.Context) {
	var since time.Time
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "since phải theo định dạng RFC3339")
			return
		}
		since = parsed
	}

	count, err := ac.adminService.ReindexPosts(c.Request.Context(), since, 0)
	if err != nil {
		ac.logger.Error("Lỗi reindex tin đăng", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "REINDEX_ERROR", "Lỗi reindex tin đăng: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "Reindex tin đăng thành công",
		Data:    map[string]interface{}{"posts_indexed": count},
	})
}

// ExportData GET /v1/admin/export/:type (admin_units, posts)
func (ac *AdminController) ExportData(c *gin.Context) {
	dataType := c.Param("type")

	limit := 10000
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = l
	}

	data, err := ac.adminService.ExportData(c.Request.Context(), dataType, limit)
	if err != nil {
		ac.logger.Error("Lỗi export data", zap.Error(err))
		errorResponse(c, http.StatusBadRequest, "EXPORT_ERROR", "Lỗi export data: "+err.Error())
		return
	}

	filename := fmt.Sprintf("%s_export_%s.json", dataType, time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Data(http.StatusOK, "application/json", data)
}
