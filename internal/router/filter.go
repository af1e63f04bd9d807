package router

import (
	"github.com/listing-resolver/app/models"
)

// Filter keys
const (
	FilterStatus    = "status"
	FilterType      = "type"
	FilterProvince  = "province"
	FilterWards     = "wards"
	FilterSearch    = QuerySearch
	FilterPrice     = QueryPrice
	FilterArea      = QueryArea
	FilterBedrooms  = QueryBedrooms
	FilterBathrooms = QueryBathrooms
	FilterCategory  = QueryCategory
)

// SearchFilters bộ lọc chuẩn gửi sang dịch vụ nội dung
type SearchFilters map[string]string

var passThroughKeys = []string{QuerySearch, QueryPrice, QueryArea, QueryBedrooms, QueryBathrooms, QueryCategory}

// TransactionToPostType mua-ban → "ban", cho-thue → "cho-thue"
func TransactionToPostType(transactionType string) (string, bool) {
	switch transactionType {
	case models.TransactionSale:
		return models.PostTypeSale, true
	case models.TransactionRent:
		return models.PostTypeRent, true
	}
	return "", false
}

// BuildSearchFilters tạo bộ lọc tìm kiếm từ trang danh sách đã hợp nhất.
// Các giá trị query được chuyển nguyên văn; dịch vụ nội dung tự kiểm tra.
func BuildSearchFilters(merged MergedListing, q QueryParams) SearchFilters {
	filters := SearchFilters{FilterStatus: models.PostStatusActive}

	if postType, ok := TransactionToPostType(merged.Listing.TransactionType); ok {
		filters[FilterType] = postType
	}
	if merged.ProvinceKey != "" {
		filters[FilterProvince] = merged.ProvinceKey
	}
	if merged.WardKey != "" {
		filters[FilterWards] = merged.WardKey
	}

	// category from a ward-category path applies unless the query names one
	if merged.Listing.Location.Category != "" {
		filters[FilterCategory] = merged.Listing.Location.Category
	}
	for _, key := range passThroughKeys {
		if v, ok := q[key]; ok && v != "" {
			filters[key] = v
		}
	}

	return filters
}
