package responses

import (
	"github.com/listing-resolver/app/models"
	"github.com/listing-resolver/internal/router"
)

// PageResponse dữ liệu trang giao cho tầng render
type PageResponse struct {
	Kind           models.RouteKind           `json:"kind"`                 // Loại trang
	Rule           int                        `json:"rule"`                 // Số thứ tự luật đã khớp
	Classification models.RouteClassification `json:"classification"`       // Kết quả phân loại
	Post           *models.Post               `json:"post,omitempty"`       // Tin đăng (trang chi tiết)
	Posts          *[]models.Post             `json:"posts,omitempty"`      // Danh sách tin (trang danh sách)
	Filters        router.SearchFilters       `json:"filters,omitempty"`    // Bộ lọc đã gửi đi
	Pagination     *Pagination                `json:"pagination,omitempty"` // Phân trang
	Breadcrumb     *models.BreadcrumbData     `json:"breadcrumb,omitempty"` // Breadcrumb dạng 3 cấp
	RequestID      string                     `json:"request_id,omitempty"`
}

// Pagination thông tin phân trang
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// ClassifyResponse chỉ phân loại route
type ClassifyResponse struct {
	Path           string                     `json:"path"`
	Segments       []string                   `json:"segments"`
	Kind           models.RouteKind           `json:"kind"`
	Rule           int                        `json:"rule"`
	Classification models.RouteClassification `json:"classification"`
}

// ErrorResponse response lỗi
type ErrorResponse struct {
	Error     string      `json:"error"`                // Mã lỗi
	Message   string      `json:"message"`              // Thông báo lỗi
	Details   interface{} `json:"details,omitempty"`    // Chi tiết lỗi
	Timestamp string      `json:"timestamp"`            // Thời gian xảy ra lỗi
	RequestID string      `json:"request_id,omitempty"` // ID của request
}

// SuccessResponse response thành công
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// HealthCheckResponse response health check
type HealthCheckResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services,omitempty"`
}

// SeedResponse response seed gazetteer / tin đăng
type SeedResponse struct {
	ValidationPassed bool     `json:"validation_passed"`
	Warnings         []string `json:"warnings,omitempty"`
	UnitsProcessed   int      `json:"units_processed,omitempty"`
	PostsProcessed   int      `json:"posts_processed,omitempty"`
	IndexesBuilt     int      `json:"indexes_built,omitempty"`
	ProcessingTimeMs int64    `json:"processing_time_ms,omitempty"`
	DryRun           bool     `json:"dry_run"`
	Message          string   `json:"message"`
}
