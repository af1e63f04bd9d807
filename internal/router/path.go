package router

import (
	"net/url"
	"strings"
)

// SplitSegments tách path thành các segment đã URL-decode, bỏ segment rỗng ở đầu/cuối.
// Segment rỗng ở giữa ("a//b") được giữ nguyên vị trí.
func SplitSegments(path string) []string {
	path = strings.Trim(strings.TrimSpace(path), "/")
	if path == "" {
		return nil
	}
	rawParts := strings.Split(path, "/")
	parts := make([]string, 0, len(rawParts))
	for _, part := range rawParts {
		if decoded, err := url.PathUnescape(part); err == nil {
			part = decoded
		}
		parts = append(parts, strings.TrimSpace(part))
	}
	return parts
}
