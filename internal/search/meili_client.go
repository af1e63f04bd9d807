// Package search provides Meilisearch-backed lookups: administrative units and posts
package search

import (
	"fmt"
	"strings"
)

// FilterEq tạo điều kiện bằng: field = "value"
func FilterEq(field, value string) string {
	return fmt.Sprintf("%s = %q", field, value)
}

// FilterLevelParent creates filter string for level and parent_code
func FilterLevelParent(level int, parentCode string) string {
	if parentCode == "" {
		return FilterLevel(level)
	}
	return fmt.Sprintf("level = %d AND parent_code = %q", level, parentCode)
}

// FilterLevel creates simple level filter
func FilterLevel(level int) string {
	return fmt.Sprintf("level = %d", level)
}

// FilterAnd nối các điều kiện khác rỗng bằng AND
func FilterAnd(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " AND ")
}

// FilterAnyOf (field = a OR field = b ...) trên nhiều field cùng một giá trị
func FilterAnyOf(value string, fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, FilterEq(f, value))
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}
