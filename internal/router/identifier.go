package router

import (
	"regexp"
	"strings"
)

var (
	reLegacyID = regexp.MustCompile(`^\d+$`)
	reObjectID = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
)

// IsValidIdentifier: ID số của hệ thống cũ hoặc ObjectID 24 ký tự hex
func IsValidIdentifier(token string) bool {
	return reLegacyID.MatchString(token) || reObjectID.MatchString(token)
}

// IsLegacyID kiểm tra ID dạng số
func IsLegacyID(token string) bool {
	return reLegacyID.MatchString(token)
}

// IDToken phần đứng trước dấu gạch nối đầu tiên: "12345-vinhomes" → "12345".
// Slug không có gạch nối trả về chính nó.
func IDToken(idSlug string) string {
	token, _, _ := strings.Cut(idSlug, "-")
	return token
}

// ExtractID lấy và kiểm tra ID từ slug chi tiết
func ExtractID(idSlug string) (string, bool) {
	token := IDToken(idSlug)
	if !IsValidIdentifier(token) {
		return "", false
	}
	return token, true
}
