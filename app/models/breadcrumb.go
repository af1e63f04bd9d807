package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Breadcrumb tên hiển thị của tỉnh và xã. Mô hình 2 cấp, không có cấp huyện.
type Breadcrumb struct {
	City string `json:"city"`
	Ward string `json:"ward"`
}

// BreadcrumbData dạng 3 cấp giữ cho tầng render cũ; District luôn rỗng.
type BreadcrumbData struct {
	City     string `json:"city"`
	District string `json:"district"`
	Ward     string `json:"ward"`
}

// ToData chuyển sang dạng tương thích 3 cấp
func (b Breadcrumb) ToData() BreadcrumbData {
	return BreadcrumbData{City: b.City, District: "", Ward: b.Ward}
}

// BreadcrumbCacheEntry bản ghi cache breadcrumb trong MongoDB
type BreadcrumbCacheEntry struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Key              string             `bson:"key" json:"key"`
	Breadcrumb       Breadcrumb         `bson:"breadcrumb" json:"breadcrumb"`
	GazetteerVersion string             `bson:"gazetteer_version" json:"gazetteer_version"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	LastAccessed     time.Time          `bson:"last_accessed" json:"last_accessed"`
	AccessCount      int64              `bson:"access_count" json:"access_count"`
}
