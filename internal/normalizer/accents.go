package normalizer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var reNonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// StripDiacritics loại bỏ dấu tiếng Việt một cách an toàn
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	out, _, _ := transform.String(t, s)
	// đ/Đ không phải dấu kết hợp nên NFD không tách được
	return strings.NewReplacer("đ", "d", "Đ", "D").Replace(out)
}

// isMn kiểm tra xem rune có phải là diacritic mark không
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// RemoveAccentsAndLowercase loại bỏ dấu và chuyển về lowercase
func RemoveAccentsAndLowercase(s string) string {
	return strings.ToLower(StripDiacritics(s))
}

// Slugify tạo slug ASCII từ tên có dấu: "Thành phố Hà Nội" → "thanh-pho-ha-noi"
func Slugify(s string) string {
	ascii := strings.ToLower(unidecode.Unidecode(s))
	return strings.Trim(reNonSlug.ReplaceAllString(ascii, "-"), "-")
}

// CompareKey dạng so khớp mờ: không dấu, lowercase, khoảng trắng đơn.
// Nhận cả slug ("ha-noi") lẫn tên ("Hà Nội").
func CompareKey(s string) string {
	s = RemoveAccentsAndLowercase(strings.ReplaceAll(s, "-", " "))
	return strings.Join(strings.Fields(s), " ")
}
