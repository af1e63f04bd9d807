package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/listing-resolver/app/models"
	"github.com/listing-resolver/internal/normalizer"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

// GazetteerSearcher tra cứu đơn vị hành chính trong index Meilisearch
type GazetteerSearcher struct {
	client        meilisearch.ServiceManager
	logger        *zap.Logger
	indexName     string
	timeout       time.Duration
	maxCandidates int
}

// SearchConfig cấu hình cho Meilisearch
type SearchConfig struct {
	Host          string
	APIKey        string
	IndexName     string
	Timeout       time.Duration
	MaxCandidates int
}

// NewGazetteerSearcher tạo mới GazetteerSearcher với Meilisearch client
func NewGazetteerSearcher(config SearchConfig, logger *zap.Logger) (*GazetteerSearcher, error) {
	client := meilisearch.New(config.Host, meilisearch.WithAPIKey(config.APIKey))

	if _, err := client.Health(); err != nil {
		return nil, fmt.Errorf("không thể kết nối Meilisearch: %w", err)
	}

	maxCandidates := config.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = 20
	}

	return &GazetteerSearcher{
		client:        client,
		logger:        logger,
		indexName:     config.IndexName,
		timeout:       config.Timeout,
		maxCandidates: maxCandidates,
	}, nil
}

// kindForLevel
func kindForLevel(level int) normalizer.UnitKind {
	if level == models.LevelProvinceUnit {
		return normalizer.UnitProvince
	}
	return normalizer.UnitWard
}

// FindByKey tìm đơn vị theo slug, slug bỏ tiền tố hoặc mã. Trả (nil, nil) nếu không có.
func (gs *GazetteerSearcher) FindByKey(ctx context.Context, level int, parentCode, key string) (*models.AdminUnit, error) {
	if key == "" {
		return nil, errors.New("key không được để trống")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stripped := normalizer.StripAdminPrefix(key, kindForLevel(level))
	filter := FilterAnd(
		FilterLevelParent(level, parentCode),
		"("+FilterEq("slug", key)+" OR "+FilterEq("key", stripped)+" OR "+FilterEq("code", key)+")",
	)

	result, err := gs.client.Index(gs.indexName).Search("", &meilisearch.SearchRequest{
		Filter: filter,
		Limit:  1,
	})
	if err != nil {
		return nil, fmt.Errorf("lỗi tìm admin unit: %w", err)
	}

	units := gs.parseSearchResults(result)
	if len(units) == 0 {
		return nil, nil
	}
	return &units[0], nil
}

// SearchCandidates tìm kiếm full-text các đơn vị cùng cấp (và cùng tỉnh với cấp xã)
func (gs *GazetteerSearcher) SearchCandidates(ctx context.Context, level int, parentCode, query string) ([]models.AdminUnit, error) {
	if query == "" {
		return nil, errors.New("query không được để trống")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := gs.client.Index(gs.indexName).Search(normalizer.CompareKey(query), &meilisearch.SearchRequest{
		Filter: FilterLevelParent(level, parentCode),
		Limit:  int64(gs.maxCandidates),
	})
	if err != nil {
		return nil, fmt.Errorf("lỗi tìm kiếm với filter: %w", err)
	}

	return gs.parseSearchResults(result), nil
}

// parseSearchResults parse kết quả từ Meilisearch thành AdminUnit
func (gs *GazetteerSearcher) parseSearchResults(result *meilisearch.SearchResponse) []models.AdminUnit {
	var units []models.AdminUnit

	for _, hit := range result.Hits {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}

		unit := models.AdminUnit{}
		if code, ok := hitMap["code"].(string); ok {
			unit.Code = code
		}
		if parentCode, ok := hitMap["parent_code"].(string); ok {
			unit.ParentCode = parentCode
		}
		if name, ok := hitMap["name"].(string); ok {
			unit.Name = name
		}
		if shortName, ok := hitMap["short_name"].(string); ok {
			unit.ShortName = shortName
		}
		if slug, ok := hitMap["slug"].(string); ok {
			unit.Slug = slug
		}
		if adminSubtype, ok := hitMap["admin_subtype"].(string); ok {
			unit.AdminSubtype = adminSubtype
		}
		if level, ok := hitMap["level"].(float64); ok {
			unit.Level = int(level)
		}
		if aliasesRaw, ok := hitMap["aliases"].([]interface{}); ok {
			for _, alias := range aliasesRaw {
				if aliasStr, ok := alias.(string); ok {
					unit.Aliases = append(unit.Aliases, aliasStr)
				}
			}
		}

		units = append(units, unit)
	}

	return units
}

// BuildIndexes cấu hình index đơn vị hành chính
func (gs *GazetteerSearcher) BuildIndexes() error {
	index := gs.client.Index(gs.indexName)

	task, err := index.UpdateSettings(&meilisearch.Settings{
		SearchableAttributes: []string{"short_name", "name", "key", "aliases"},
		FilterableAttributes: []string{"code", "parent_code", "level", "slug", "key", "admin_subtype"},
		SortableAttributes:   []string{"level", "code"},
		RankingRules:         []string{"words", "typo", "proximity", "attribute", "sort", "exactness"},
		Synonyms: map[string][]string{
			"hcm": {"ho chi minh", "sai gon"},
			"hn":  {"ha noi"},
		},
		TypoTolerance: &meilisearch.TypoTolerance{
			Enabled: true,
			MinWordSizeForTypos: meilisearch.MinWordSizeForTypos{
				OneTypo:  3,
				TwoTypos: 7,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("lỗi cấu hình index: %w", err)
	}

	gs.logger.Info("Đã cấu hình index đơn vị hành chính", zap.String("index", gs.indexName), zap.Int64("task_uid", task.TaskUID))
	return nil
}

// UnitDocument dạng document lưu trong Meilisearch
func UnitDocument(unit models.AdminUnit) map[string]interface{} {
	return map[string]interface{}{
		"id":                unit.Code,
		"code":              unit.Code,
		"parent_code":       unit.ParentCode,
		"level":             unit.Level,
		"name":              unit.Name,
		"short_name":        unit.ShortName,
		"slug":              unit.Slug,
		"key":               normalizer.StripAdminPrefix(unit.Slug, kindForLevel(unit.Level)),
		"admin_subtype":     unit.AdminSubtype,
		"aliases":           unit.Aliases,
		"gazetteer_version": unit.GazetteerVersion,
	}
}

// SeedData nạp dữ liệu đơn vị hành chính vào Meilisearch
func (gs *GazetteerSearcher) SeedData(units []models.AdminUnit) error {
	if len(units) == 0 {
		return errors.New("không có dữ liệu để seed")
	}

	documents := make([]map[string]interface{}, 0, len(units))
	for _, unit := range units {
		documents = append(documents, UnitDocument(unit))
	}

	return addInBatches(gs.client.Index(gs.indexName), documents, gs.logger)
}

// addInBatches thêm documents theo lô 1000
func addInBatches(index meilisearch.IndexManager, documents []map[string]interface{}, logger *zap.Logger) error {
	batchSize := 1000
	for i := 0; i < len(documents); i += batchSize {
		end := i + batchSize
		if end > len(documents) {
			end = len(documents)
		}

		task, err := index.AddDocuments(documents[i:end], "id")
		if err != nil {
			return fmt.Errorf("lỗi thêm documents batch %d-%d: %w", i, end, err)
		}

		logger.Info("Đã thêm batch documents",
			zap.Int("from", i),
			zap.Int("to", end),
			zap.Int64("task_uid", task.TaskUID))
	}

	logger.Info("Đã seed data thành công", zap.Int("total_documents", len(documents)))
	return nil
}
