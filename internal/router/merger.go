package router

import (
	"strings"

	"github.com/listing-resolver/app/models"
	"github.com/listing-resolver/internal/normalizer"
)

// Recognized query keys; anything else is ignored.
const (
	QueryCity      = "city"
	QueryProvince  = "province"
	QueryWard      = "ward"
	QueryWards     = "wards"
	QuerySearch    = "search"
	QueryPrice     = "price"
	QueryArea      = "area"
	QueryBedrooms  = "bedrooms"
	QueryBathrooms = "bathrooms"
	QueryCategory  = "category"
)

var recognizedKeys = []string{
	QueryCity, QueryProvince, QueryWard, QueryWards, QuerySearch,
	QueryPrice, QueryArea, QueryBedrooms, QueryBathrooms, QueryCategory,
}

// QueryParams tham số query đã lọc theo các key được hỗ trợ
type QueryParams map[string]string

// NewQueryParams giữ lại các key được hỗ trợ, lấy giá trị đầu tiên, bỏ giá trị rỗng
func NewQueryParams(values map[string][]string) QueryParams {
	q := make(QueryParams)
	for _, key := range recognizedKeys {
		vals := values[key]
		if len(vals) == 0 {
			continue
		}
		if v := strings.TrimSpace(vals[0]); v != "" {
			q[key] = v
		}
	}
	return q
}

// first trả về giá trị khác rỗng đầu tiên
func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// MergedListing kết quả hợp nhất location từ path và query
type MergedListing struct {
	Listing     models.PropertyListing
	Province    string // giá trị đã chọn, chưa chuẩn hóa
	Ward        string
	ProvinceKey string // đã bỏ tiền tố hành chính, dùng làm khóa tìm kiếm
	WardKey     string
}

// MergeQuery hợp nhất location: query city > query province > path; query ward > query wards > path.
// The classification itself is left untouched.
func MergeQuery(listing models.PropertyListing, q QueryParams) MergedListing {
	province := first(q[QueryCity], q[QueryProvince], listing.Location.Province)
	ward := first(q[QueryWard], q[QueryWards], listing.Location.Ward)

	return MergedListing{
		Listing:     listing,
		Province:    province,
		Ward:        ward,
		ProvinceKey: normalizer.StripAdminPrefix(province, normalizer.UnitProvince),
		WardKey:     normalizer.StripAdminPrefix(ward, normalizer.UnitWard),
	}
}
