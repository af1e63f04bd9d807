package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/listing-resolver/app/models"
	"github.com/listing-resolver/internal/normalizer"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// UnitIndexer index Meilisearch của gazetteer
type UnitIndexer interface {
	BuildIndexes() error
	SeedData(units []models.AdminUnit) error
}

// PostIndexer index Meilisearch của tin đăng
type PostIndexer interface {
	BuildIndexes() error
	SeedData(posts []models.Post) error
}

// PostWriter ghi tin đăng vào kho chính
type PostWriter interface {
	UpsertPosts(ctx context.Context, posts []models.Post) ([]models.Post, error)
}

// AdminService service quản lý dữ liệu gazetteer, tin đăng và cache
type AdminService struct {
	db        *mongo.Database
	units     UnitIndexer
	postIndex PostIndexer
	posts     PostWriter
	cache     BreadcrumbCache
	logger    *zap.Logger
	startTime time.Time
}

// GazetteerValidation kết quả validation gazetteer
type GazetteerValidation struct {
	Passed   bool     `json:"passed"`
	Warnings []string `json:"warnings"`
}

// SeedResult kết quả seed
type SeedResult struct {
	UnitsProcessed   int   `json:"units_processed"`
	PostsProcessed   int   `json:"posts_processed"`
	IndexesBuilt     int   `json:"indexes_built"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

// SystemStats thống kê hệ thống
type SystemStats struct {
	Uptime        string                 `json:"uptime"`
	MemoryUsage   map[string]interface{} `json:"memory_usage"`
	DatabaseStats DatabaseStats          `json:"database_stats"`
	CacheStats    *CacheStats            `json:"cache_stats,omitempty"`
}

// DatabaseStats thống kê database
type DatabaseStats struct {
	AdminUnits      int64 `json:"admin_units"`
	Posts           int64 `json:"posts"`
	BreadcrumbCache int64 `json:"breadcrumb_cache"`
}

// NewAdminService tạo mới AdminService; cache có thể nil
func NewAdminService(db *mongo.Database, units UnitIndexer, postIndex PostIndexer, posts PostWriter, cache BreadcrumbCache, logger *zap.Logger) *AdminService {
	return &AdminService{
		db:        db,
		units:     units,
		postIndex: postIndex,
		posts:     posts,
		cache:     cache,
		logger:    logger,
		startTime: time.Now(),
	}
}

// PrepareUnits sinh slug còn thiếu bằng unidecode
func PrepareUnits(data []models.AdminUnit) []models.AdminUnit {
	prepared := make([]models.AdminUnit, len(data))
	for i, unit := range data {
		if unit.Slug == "" {
			unit.Slug = normalizer.Slugify(unit.Name)
		}
		prepared[i] = unit
	}
	return prepared
}

// ValidateUnits validate dữ liệu gazetteer 2 cấp
func ValidateUnits(data []models.AdminUnit) *GazetteerValidation {
	if len(data) == 0 {
		return &GazetteerValidation{
			Passed:   false,
			Warnings: []string{"Không có dữ liệu để validate"},
		}
	}

	warnings := make([]string, 0)
	provinces := make(map[string]bool)
	seenCodes := make(map[string]bool)

	for i, unit := range data {
		if unit.Code == "" {
			warnings = append(warnings, fmt.Sprintf("Missing Code at index %d", i))
		} else if seenCodes[unit.Code] {
			warnings = append(warnings, fmt.Sprintf("Duplicate Code: %s", unit.Code))
		}
		seenCodes[unit.Code] = true

		if unit.Name == "" {
			warnings = append(warnings, fmt.Sprintf("Missing Name at index %d", i))
		}
		if !unit.IsValidLevel() {
			warnings = append(warnings, fmt.Sprintf("Invalid Level %d at index %d", unit.Level, i))
		}
		if unit.AdminSubtype != "" && !unit.IsValidAdminSubtype() {
			warnings = append(warnings, fmt.Sprintf("Invalid AdminSubtype '%s' at index %d", unit.AdminSubtype, i))
		}
		if unit.Level == models.LevelProvinceUnit {
			provinces[unit.Code] = true
		}
	}

	for i, unit := range data {
		if unit.Level != models.LevelWardUnit {
			continue
		}
		if unit.ParentCode == "" {
			warnings = append(warnings, fmt.Sprintf("Ward without ParentCode at index %d", i))
		} else if !provinces[unit.ParentCode] {
			warnings = append(warnings, fmt.Sprintf("Unknown ParentCode '%s' at index %d", unit.ParentCode, i))
		}
	}

	return &GazetteerValidation{
		Passed:   len(warnings) == 0,
		Warnings: warnings,
	}
}

// SeedUnits thay dữ liệu gazetteer trong MongoDB và nạp vào Meilisearch
func (as *AdminService) SeedUnits(ctx context.Context, gazetteerVersion string, data []models.AdminUnit) (*SeedResult, error) {
	startTime := time.Now()

	data = PrepareUnits(data)
	if validation := ValidateUnits(data); !validation.Passed {
		return nil, fmt.Errorf("dữ liệu không hợp lệ: %v", validation.Warnings)
	}

	collection := as.db.Collection("admin_units")
	deleteResult, err := collection.DeleteMany(ctx, bson.M{"gazetteer_version": gazetteerVersion})
	if err != nil {
		return nil, fmt.Errorf("lỗi xóa dữ liệu cũ: %w", err)
	}
	as.logger.Info("Deleted old admin units",
		zap.String("gazetteer_version", gazetteerVersion),
		zap.Int64("deleted_count", deleteResult.DeletedCount))

	now := time.Now()
	documents := make([]interface{}, len(data))
	for i := range data {
		data[i].GazetteerVersion = gazetteerVersion
		data[i].CreatedAt = now
		data[i].UpdatedAt = now
		documents[i] = data[i]
	}

	if _, err := collection.InsertMany(ctx, documents); err != nil {
		return nil, fmt.Errorf("lỗi insert dữ liệu mới: %w", err)
	}

	indexesBuilt := 0
	if err := as.units.BuildIndexes(); err != nil {
		as.logger.Warn("Lỗi build Meilisearch indexes", zap.Error(err))
	} else {
		indexesBuilt++
	}
	if err := as.units.SeedData(data); err != nil {
		return nil, fmt.Errorf("lỗi seed data vào Meilisearch: %w", err)
	}

	// tên hiển thị có thể đã đổi
	if err := as.InvalidateBreadcrumbs(ctx, gazetteerVersion); err != nil {
		as.logger.Warn("Lỗi invalidate cache breadcrumb", zap.Error(err))
	}

	processingTime := time.Since(startTime)
	as.logger.Info("Gazetteer seed completed",
		zap.String("gazetteer_version", gazetteerVersion),
		zap.Int("units_processed", len(data)),
		zap.Duration("processing_time", processingTime))

	return &SeedResult{
		UnitsProcessed:   len(data),
		IndexesBuilt:     indexesBuilt,
		ProcessingTimeMs: processingTime.Milliseconds(),
	}, nil
}

// SeedPosts ghi tin đăng vào MongoDB rồi nạp vào index tìm kiếm
func (as *AdminService) SeedPosts(ctx context.Context, data []models.Post) (*SeedResult, error) {
	startTime := time.Now()

	for i := range data {
		if data[i].Slug == "" {
			data[i].Slug = normalizer.Slugify(data[i].Title)
		}
		if data[i].Status == "" {
			data[i].Status = models.PostStatusActive
		}
	}

	saved, err := as.posts.UpsertPosts(ctx, data)
	if err != nil {
		return nil, err
	}

	indexesBuilt := 0
	if err := as.postIndex.BuildIndexes(); err != nil {
		as.logger.Warn("Lỗi build index tin đăng", zap.Error(err))
	} else {
		indexesBuilt++
	}
	if err := as.postIndex.SeedData(saved); err != nil {
		return nil, fmt.Errorf("lỗi seed tin đăng vào Meilisearch: %w", err)
	}

	processingTime := time.Since(startTime)
	as.logger.Info("Post seed completed",
		zap.Int("posts_processed", len(saved)),
		zap.Duration("processing_time", processingTime))

	return &SeedResult{
		PostsProcessed:   len(saved),
		IndexesBuilt:     indexesBuilt,
		ProcessingTimeMs: processingTime.Milliseconds(),
	}, nil
}

// ReindexPosts nạp lại vào Meilisearch các tin đăng cập nhật sau since
func (as *AdminService) ReindexPosts(ctx context.Context, since time.Time, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 500
	}

	filter := bson.M{}
	if !since.IsZero() {
		filter["updated_at"] = bson.M{"$gt": since}
	}
	cursor, err := as.db.Collection("posts").Find(ctx, filter, options.Find().SetBatchSize(int32(batchSize)))
	if err != nil {
		return 0, fmt.Errorf("lỗi query tin đăng: %w", err)
	}
	defer cursor.Close(ctx)

	total := 0
	batch := make([]models.Post, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := as.postIndex.SeedData(batch); err != nil {
			return fmt.Errorf("lỗi nạp tin đăng vào Meilisearch: %w", err)
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for cursor.Next(ctx) {
		var post models.Post
		if err := cursor.Decode(&post); err != nil {
			as.logger.Warn("Bỏ qua tin đăng không decode được", zap.Error(err))
			continue
		}
		batch = append(batch, post)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := cursor.Err(); err != nil {
		return total, err
	}
	if err := flush(); err != nil {
		return total, err
	}

	as.logger.Info("Reindexed posts", zap.Time("since", since), zap.Int("count", total))
	return total, nil
}

// BuildIndexes cấu hình cả hai index
func (as *AdminService) BuildIndexes() error {
	if err := as.units.BuildIndexes(); err != nil {
		return fmt.Errorf("lỗi build index gazetteer: %w", err)
	}
	if err := as.postIndex.BuildIndexes(); err != nil {
		return fmt.Errorf("lỗi build index tin đăng: %w", err)
	}

	as.logger.Info("All indexes built successfully")
	return nil
}

// InvalidateBreadcrumbs xóa cache breadcrumb; version rỗng thì xóa tất cả
func (as *AdminService) InvalidateBreadcrumbs(ctx context.Context, gazetteerVersion string) error {
	if as.cache == nil {
		return nil
	}
	if gazetteerVersion == "" {
		return as.cache.Clear(ctx)
	}
	return as.cache.InvalidateByGazetteerVersion(ctx, gazetteerVersion)
}

// GetSystemStats lấy thống kê hệ thống
func (as *AdminService) GetSystemStats(ctx context.Context) (*SystemStats, error) {
	dbStats, err := as.getDatabaseStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("lỗi lấy database stats: %w", err)
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := &SystemStats{
		Uptime: time.Since(as.startTime).Round(time.Second).String(),
		MemoryUsage: map[string]interface{}{
			"alloc_mb":       bToMb(m.Alloc),
			"total_alloc_mb": bToMb(m.TotalAlloc),
			"sys_mb":         bToMb(m.Sys),
			"num_gc":         m.NumGC,
		},
		DatabaseStats: *dbStats,
	}

	if as.cache != nil {
		if cacheStats, err := as.cache.GetStats(ctx); err == nil {
			stats.CacheStats = cacheStats
		} else {
			as.logger.Warn("Lỗi lấy cache stats", zap.Error(err))
		}
	}
	return stats, nil
}

func (as *AdminService) getDatabaseStats(ctx context.Context) (*DatabaseStats, error) {
	stats := &DatabaseStats{}
	counts := []struct {
		collection string
		target     *int64
	}{
		{"admin_units", &stats.AdminUnits},
		{"posts", &stats.Posts},
		{"breadcrumb_cache", &stats.BreadcrumbCache},
	}

	for _, c := range counts {
		count, err := as.db.Collection(c.collection).CountDocuments(ctx, bson.M{})
		if err != nil {
			return nil, err
		}
		*c.target = count
	}
	return stats, nil
}

// ExportData export dữ liệu JSON để backup
func (as *AdminService) ExportData(ctx context.Context, dataType string, limit int) ([]byte, error) {
	switch dataType {
	case "admin_units", "posts":
	default:
		return nil, errors.New("không hỗ trợ loại dữ liệu này")
	}

	findOptions := options.Find().SetLimit(int64(limit))
	cursor, err := as.db.Collection(dataType).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("lỗi query data: %w", err)
	}
	defer cursor.Close(ctx)

	var results []bson.M
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("lỗi decode results: %w", err)
	}

	return json.MarshalIndent(results, "", "  ")
}

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}
