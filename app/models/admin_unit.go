package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminUnit đại diện cho đơn vị hành chính trong mô hình 2 cấp (tỉnh/thành phố → xã/phường/thị trấn)
type AdminUnit struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty" yaml:"-"`
	Code             string             `bson:"code" json:"code" yaml:"code"`                                        // Mã đơn vị hành chính
	ParentCode       string             `bson:"parent_code,omitempty" json:"parent_code,omitempty" yaml:"parent_code"` // Mã tỉnh (chỉ với cấp xã)
	Level            int                `bson:"level" json:"level" yaml:"level"`                                     // 1=province, 2=ward
	Name             string             `bson:"name" json:"name" yaml:"name"`                                        // Tên có dấu, ví dụ "Tỉnh Hà Nam"
	ShortName        string             `bson:"short_name" json:"short_name" yaml:"short_name"`                      // Tên không kèm loại, ví dụ "Hà Nam"
	Slug             string             `bson:"slug" json:"slug" yaml:"slug"`                                        // Ví dụ "tinh-ha-nam"
	AdminSubtype     string             `bson:"admin_subtype" json:"admin_subtype" yaml:"admin_subtype"`
	Aliases          []string           `bson:"aliases,omitempty" json:"aliases,omitempty" yaml:"aliases"`
	GazetteerVersion string             `bson:"gazetteer_version" json:"gazetteer_version" yaml:"-"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at" yaml:"-"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at" yaml:"-"`
}

// AdminSubtype constants
const (
	AdminSubtypeProvince     = "province"
	AdminSubtypeMunicipality = "municipality"
	AdminSubtypeWard         = "ward"
	AdminSubtypeCommune      = "commune"
	AdminSubtypeTownship     = "township"
)

// Level constants
const (
	LevelProvinceUnit = 1
	LevelWardUnit     = 2
)

// IsValidAdminSubtype kiểm tra admin_subtype có hợp lệ không
func (au *AdminUnit) IsValidAdminSubtype() bool {
	switch au.AdminSubtype {
	case AdminSubtypeProvince, AdminSubtypeMunicipality:
		return au.Level == LevelProvinceUnit
	case AdminSubtypeWard, AdminSubtypeCommune, AdminSubtypeTownship:
		return au.Level == LevelWardUnit
	}
	return false
}

// IsValidLevel kiểm tra level có hợp lệ không
func (au *AdminUnit) IsValidLevel() bool {
	return au.Level == LevelProvinceUnit || au.Level == LevelWardUnit
}

// DisplayName tên hiển thị trên breadcrumb
func (au *AdminUnit) DisplayName() string {
	if au.ShortName != "" {
		return au.ShortName
	}
	return au.Name
}
