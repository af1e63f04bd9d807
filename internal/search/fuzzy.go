package search

import (
	"github.com/agnivade/levenshtein"
	"github.com/listing-resolver/app/models"
	"github.com/listing-resolver/internal/normalizer"
	"github.com/xrash/smetrics"
)

const (
	jwWeight  = 0.6
	levWeight = 0.4
)

// Similarity điểm giống nhau trong [0,1] giữa hai tên, bỏ dấu và gạch nối trước khi so
func Similarity(a, b string) float64 {
	a, b = normalizer.CompareKey(a), normalizer.CompareKey(b)
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	jaro := smetrics.JaroWinkler(a, b, 0.7, 4)

	maxLen := len([]rune(a))
	if n := len([]rune(b)); n > maxLen {
		maxLen = n
	}
	lev := 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
	if lev < 0 {
		lev = 0
	}

	return jwWeight*jaro + levWeight*lev
}

// unitNames các dạng tên dùng để so khớp một đơn vị
func unitNames(unit models.AdminUnit, kind normalizer.UnitKind) []string {
	names := []string{unit.ShortName, unit.Name, normalizer.StripAdminPrefix(unit.Slug, kind)}
	return append(names, unit.Aliases...)
}

// BestMatch chọn đơn vị giống key nhất; nil nếu không có đơn vị nào đạt threshold
func BestMatch(key string, units []models.AdminUnit, kind normalizer.UnitKind, threshold float64) (*models.AdminUnit, float64) {
	var best *models.AdminUnit
	bestScore := 0.0

	for i := range units {
		for _, name := range unitNames(units[i], kind) {
			if score := Similarity(key, name); score > bestScore {
				best, bestScore = &units[i], score
			}
		}
	}

	if best == nil || bestScore < threshold {
		return nil, bestScore
	}
	return best, bestScore
}
