package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/listing-resolver/app/models"
	"github.com/listing-resolver/internal/router"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

// PostIndex tìm kiếm tin đăng trong index Meilisearch
type PostIndex struct {
	client    meilisearch.ServiceManager
	indexName string
	logger    *zap.Logger
}

// NewPostIndex tạo mới PostIndex dùng chung client với gazetteer
func NewPostIndex(gs *GazetteerSearcher, indexName string, logger *zap.Logger) *PostIndex {
	return &PostIndex{
		client:    gs.client,
		indexName: indexName,
		logger:    logger,
	}
}

// filter key → document field
var equalityFields = map[string]string{
	router.FilterStatus:   "status",
	router.FilterType:     "type",
	router.FilterProvince: "province",
	router.FilterWards:    "ward",
	router.FilterCategory: "category",
}

// BuildFilterExpression chuyển bộ lọc chuẩn thành biểu thức filter của Meilisearch.
// Giá trị số sai định dạng bị bỏ qua và trả về trong danh sách ignored.
func BuildFilterExpression(filters router.SearchFilters) (expr string, ignored []string) {
	var parts []string

	for _, key := range []string{router.FilterStatus, router.FilterType, router.FilterProvince, router.FilterWards, router.FilterCategory} {
		if v, ok := filters[key]; ok && v != "" {
			parts = append(parts, FilterEq(equalityFields[key], v))
		}
	}

	for _, key := range []string{router.FilterBedrooms, router.FilterBathrooms} {
		v, ok := filters[key]
		if !ok || v == "" {
			continue
		}
		if cond, ok := countCondition(key, v); ok {
			parts = append(parts, cond)
		} else {
			ignored = append(ignored, key)
		}
	}

	for _, key := range []string{router.FilterPrice, router.FilterArea} {
		v, ok := filters[key]
		if !ok || v == "" {
			continue
		}
		if cond, ok := rangeCondition(key, v); ok {
			parts = append(parts, cond)
		} else {
			ignored = append(ignored, key)
		}
	}

	return FilterAnd(parts...), ignored
}

// countCondition "3" → field = 3, "4+" → field >= 4
func countCondition(field, v string) (string, bool) {
	atLeast := strings.HasSuffix(v, "+")
	n, err := strconv.Atoi(strings.TrimSuffix(v, "+"))
	if err != nil || n < 0 {
		return "", false
	}
	if atLeast {
		return fmt.Sprintf("%s >= %d", field, n), true
	}
	return fmt.Sprintf("%s = %d", field, n), true
}

// rangeCondition "min-max", "min-" hoặc "-max"
func rangeCondition(field, v string) (string, bool) {
	lo, hi, found := strings.Cut(v, "-")
	if !found {
		return "", false
	}

	var parts []string
	if lo != "" {
		n, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return "", false
		}
		parts = append(parts, fmt.Sprintf("%s >= %s", field, strconv.FormatFloat(n, 'f', -1, 64)))
	}
	if hi != "" {
		n, err := strconv.ParseFloat(hi, 64)
		if err != nil {
			return "", false
		}
		parts = append(parts, fmt.Sprintf("%s <= %s", field, strconv.FormatFloat(n, 'f', -1, 64)))
	}
	if len(parts) == 0 {
		return "", false
	}
	return FilterAnd(parts...), true
}

// Search tìm tin đăng theo bộ lọc, page bắt đầu từ 1
func (pi *PostIndex) Search(ctx context.Context, filters router.SearchFilters, page, pageSize int) ([]models.Post, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}

	expr, ignored := BuildFilterExpression(filters)
	if len(ignored) > 0 {
		pi.logger.Debug("Bỏ qua bộ lọc không hợp lệ", zap.Strings("keys", ignored))
	}

	result, err := pi.client.Index(pi.indexName).Search(filters[router.FilterSearch], &meilisearch.SearchRequest{
		Filter: expr,
		Limit:  int64(pageSize),
		Offset: int64((page - 1) * pageSize),
		Sort:   []string{"created_ts:desc"},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("lỗi tìm kiếm tin đăng: %w", err)
	}

	posts := make([]models.Post, 0, len(result.Hits))
	for _, hit := range result.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}
		var post models.Post
		if err := json.Unmarshal(raw, &post); err != nil {
			pi.logger.Warn("Lỗi decode tin đăng từ Meilisearch", zap.Error(err))
			continue
		}
		posts = append(posts, post)
	}

	return posts, result.EstimatedTotalHits, nil
}

// BuildIndexes cấu hình index tin đăng
func (pi *PostIndex) BuildIndexes() error {
	task, err := pi.client.Index(pi.indexName).UpdateSettings(&meilisearch.Settings{
		SearchableAttributes: []string{"title", "description"},
		FilterableAttributes: []string{"status", "type", "province", "ward", "category", "price", "area", "bedrooms", "bathrooms"},
		SortableAttributes:   []string{"created_ts", "price", "area"},
	})
	if err != nil {
		return fmt.Errorf("lỗi cấu hình index tin đăng: %w", err)
	}

	pi.logger.Info("Đã cấu hình index tin đăng", zap.String("index", pi.indexName), zap.Int64("task_uid", task.TaskUID))
	return nil
}

// SeedData nạp tin đăng vào Meilisearch
func (pi *PostIndex) SeedData(posts []models.Post) error {
	documents := make([]map[string]interface{}, 0, len(posts))
	for _, post := range posts {
		raw, err := json.Marshal(post)
		if err != nil {
			return fmt.Errorf("lỗi marshal tin đăng: %w", err)
		}
		var doc map[string]interface{}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("lỗi chuyển tin đăng: %w", err)
		}
		doc["created_ts"] = post.CreatedAt.Unix()
		documents = append(documents, doc)
	}
	if len(documents) == 0 {
		return nil
	}
	return addInBatches(pi.client.Index(pi.indexName), documents, pi.logger)
}
