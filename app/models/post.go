package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post tin đăng bất động sản
type Post struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id" yaml:"-"`
	LegacyID        string             `bson:"legacy_id,omitempty" json:"legacy_id,omitempty" yaml:"legacy_id"` // ID số của hệ thống cũ
	Title           string             `bson:"title" json:"title" yaml:"title"`
	Slug            string             `bson:"slug" json:"slug" yaml:"slug"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty" yaml:"description"`
	Type            string             `bson:"type" json:"type" yaml:"type"` // "ban" | "cho-thue"
	Category        string             `bson:"category" json:"category" yaml:"category"`
	Province        string             `bson:"province" json:"province" yaml:"province"` // slug tỉnh, không tiền tố
	Ward            string             `bson:"ward" json:"ward" yaml:"ward"`             // slug xã, không tiền tố
	Price           float64            `bson:"price" json:"price" yaml:"price"`
	Area            float64            `bson:"area" json:"area" yaml:"area"`
	Bedrooms        int                `bson:"bedrooms" json:"bedrooms" yaml:"bedrooms"`
	Bathrooms       int                `bson:"bathrooms" json:"bathrooms" yaml:"bathrooms"`
	Status          string             `bson:"status" json:"status" yaml:"status"`
	Views           int64              `bson:"views" json:"views" yaml:"-"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at" yaml:"-"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at" yaml:"-"`
}

// Post status constants
const (
	PostStatusActive  = "active"
	PostStatusHidden  = "hidden"
	PostStatusExpired = "expired"
)

// Post type constants (giá trị lưu trong kho nội dung)
const (
	PostTypeSale = "ban"
	PostTypeRent = "cho-thue"
)
