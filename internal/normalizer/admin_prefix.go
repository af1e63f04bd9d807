package normalizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// UnitKind cấp đơn vị hành chính (mô hình 2 cấp: tỉnh → xã/phường)
type UnitKind string

const (
	UnitProvince UnitKind = "province"
	UnitWard     UnitKind = "ward"
)

// Prefix candidates, most specific first. Only one prefix is ever stripped.
var (
	provincePrefixes = []string{"tinh-", "thanh-pho-"}
	wardPrefixes     = []string{"xa-", "phuong-", "thi-tran-"}
)

func prefixesFor(kind UnitKind) []string {
	switch kind {
	case UnitProvince:
		return provincePrefixes
	case UnitWard:
		return wardPrefixes
	}
	return nil
}

// StripAdminPrefix bỏ tiền tố hành chính (tinh-, thanh-pho-, xa-, phuong-, thi-tran-) khỏi slug.
// Kết quả vẫn ở dạng slug, dùng làm khóa tìm kiếm.
func StripAdminPrefix(slug string, kind UnitKind) string {
	for _, prefix := range prefixesFor(kind) {
		if strings.HasPrefix(slug, prefix) {
			return strings.TrimPrefix(slug, prefix)
		}
	}
	return slug
}

// HumanizeSlug đổi "ha-nam" thành "Ha Nam": gạch nối thành khoảng trắng, viết hoa chữ đầu mỗi từ.
func HumanizeSlug(slug string) string {
	words := strings.Fields(strings.ReplaceAll(slug, "-", " "))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// NormalizeAdminName tên hiển thị dự phòng khi không gọi được dịch vụ địa danh.
// Pure and total: "" → "", "tinh-ha-nam" → "Ha Nam", "xa-thanh-liem" → "Thanh Liem".
func NormalizeAdminName(slug string, kind UnitKind) string {
	if slug == "" {
		return ""
	}
	return HumanizeSlug(StripAdminPrefix(slug, kind))
}
