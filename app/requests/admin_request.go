package requests

import "github.com/listing-resolver/app/models"

// SeedUnitsRequest request seed gazetteer
type SeedUnitsRequest struct {
	GazetteerVersion string             `json:"gazetteer_version" binding:"required"` // Phiên bản gazetteer
	Data             []models.AdminUnit `json:"data" binding:"required,min=1"`         // Dữ liệu gazetteer
}

// SeedPostsRequest request seed tin đăng
type SeedPostsRequest struct {
	Data []models.Post `json:"data" binding:"required,min=1"`
}

// InvalidateCacheRequest request xóa cache breadcrumb
type InvalidateCacheRequest struct {
	GazetteerVersion string `json:"gazetteer_version,omitempty"` // rỗng: xóa tất cả
}

// SeedFile định dạng file YAML cho cmd/seed
type SeedFile struct {
	GazetteerVersion string             `yaml:"gazetteer_version"`
	Units            []models.AdminUnit `yaml:"units"`
	Posts            []models.Post      `yaml:"posts"`
}
