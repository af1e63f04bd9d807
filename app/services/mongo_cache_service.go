package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/listing-resolver/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoCacheService persistent cache breadcrumb: MongoDB + LRU in-memory
type MongoCacheService struct {
	collection       *mongo.Collection
	l1Cache          *lru.Cache[string, models.Breadcrumb]
	gazetteerVersion string
	logger           *zap.Logger

	l1Hits    atomic.Int64
	mongoHits atomic.Int64
	misses    atomic.Int64
}

// NewMongoCacheService tạo mới MongoCacheService. ttl > 0 tạo TTL index trên created_at.
func NewMongoCacheService(db *mongo.Database, l1Size int, ttl time.Duration, gazetteerVersion string, logger *zap.Logger) (*MongoCacheService, error) {
	l1Cache, err := lru.New[string, models.Breadcrumb](l1Size)
	if err != nil {
		return nil, fmt.Errorf("không thể tạo LRU cache: %w", err)
	}

	collection := db.Collection("breadcrumb_cache")

	createdAt := options.Index()
	if ttl > 0 {
		createdAt.SetExpireAfterSeconds(int32(ttl.Seconds()))
	}
	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{bson.E{Key: "gazetteer_version", Value: 1}},
		},
		{
			Keys:    bson.D{bson.E{Key: "created_at", Value: 1}},
			Options: createdAt,
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("Không thể tạo indexes cho breadcrumb_cache", zap.Error(err))
	}

	return &MongoCacheService{
		collection:       collection,
		l1Cache:          l1Cache,
		gazetteerVersion: gazetteerVersion,
		logger:           logger,
	}, nil
}

// Get lấy breadcrumb từ cache (L1 → MongoDB)
func (mcs *MongoCacheService) Get(ctx context.Context, key string) (*models.Breadcrumb, bool, error) {
	if crumb, found := mcs.l1Cache.Get(key); found {
		mcs.l1Hits.Add(1)
		return &crumb, true, nil
	}

	var entry models.BreadcrumbCacheEntry
	filter := bson.M{"key": key, "gazetteer_version": mcs.gazetteerVersion}
	err := mcs.collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			mcs.misses.Add(1)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("lỗi query MongoDB cache: %w", err)
	}

	mcs.mongoHits.Add(1)
	go mcs.updateAccessStats(entry.ID)

	mcs.l1Cache.Add(key, entry.Breadcrumb)
	mcs.logger.Debug("MongoDB cache hit", zap.String("key", key))

	crumb := entry.Breadcrumb
	return &crumb, true, nil
}

// Set lưu breadcrumb vào cache (L1 + MongoDB)
func (mcs *MongoCacheService) Set(ctx context.Context, key string, breadcrumb *models.Breadcrumb) error {
	if breadcrumb == nil {
		return nil
	}
	mcs.l1Cache.Add(key, *breadcrumb)

	now := time.Now()
	entry := models.BreadcrumbCacheEntry{
		Key:              key,
		Breadcrumb:       *breadcrumb,
		GazetteerVersion: mcs.gazetteerVersion,
		CreatedAt:        now,
		LastAccessed:     now,
		AccessCount:      1,
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := mcs.collection.ReplaceOne(ctx, bson.M{"key": key}, entry, opts); err != nil {
		mcs.logger.Error("Lỗi lưu vào MongoDB cache", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("lỗi lưu vào MongoDB cache: %w", err)
	}
	return nil
}

// Delete xóa breadcrumb khỏi cache
func (mcs *MongoCacheService) Delete(ctx context.Context, key string) error {
	mcs.l1Cache.Remove(key)

	if _, err := mcs.collection.DeleteOne(ctx, bson.M{"key": key}); err != nil {
		return fmt.Errorf("lỗi xóa khỏi MongoDB cache: %w", err)
	}
	return nil
}

// Clear xóa tất cả cache
func (mcs *MongoCacheService) Clear(ctx context.Context) error {
	mcs.l1Cache.Purge()

	if _, err := mcs.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("lỗi clear MongoDB cache: %w", err)
	}
	return nil
}

// InvalidateByGazetteerVersion xóa entry của các version khác và chuyển sang version mới
func (mcs *MongoCacheService) InvalidateByGazetteerVersion(ctx context.Context, gazetteerVersion string) error {
	mcs.l1Cache.Purge()

	result, err := mcs.collection.DeleteMany(ctx, bson.M{"gazetteer_version": bson.M{"$ne": gazetteerVersion}})
	if err != nil {
		return fmt.Errorf("lỗi invalidate cache theo gazetteer version: %w", err)
	}
	mcs.gazetteerVersion = gazetteerVersion

	mcs.logger.Info("Đã invalidate cache",
		zap.String("gazetteer_version", gazetteerVersion),
		zap.Int64("deleted_count", result.DeletedCount))
	return nil
}

// GetStats lấy thống kê cache
func (mcs *MongoCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	count, err := mcs.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("lỗi đếm documents trong MongoDB cache: %w", err)
	}

	hits := mcs.l1Hits.Load() + mcs.mongoHits.Load()
	misses := mcs.misses.Load()

	mcs.logger.Debug("Cache stats",
		zap.Int64("l1_hits", mcs.l1Hits.Load()),
		zap.Int64("mongo_hits", mcs.mongoHits.Load()),
		zap.Int("l1_size", mcs.l1Cache.Len()))

	return &CacheStats{
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: count,
	}, nil
}

// Close connection MongoDB do caller quản lý
func (mcs *MongoCacheService) Close() error {
	return nil
}

// updateAccessStats cập nhật thống kê truy cập (async)
func (mcs *MongoCacheService) updateAccessStats(id primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{"last_accessed": time.Now()},
		"$inc": bson.M{"access_count": 1},
	}
	if _, err := mcs.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		mcs.logger.Warn("Lỗi update access stats", zap.Error(err))
	}
}

// WarmUp nạp các breadcrumb được truy cập nhiều nhất vào L1
func (mcs *MongoCacheService) WarmUp(ctx context.Context, limit int) error {
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "access_count", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := mcs.collection.Find(ctx, bson.M{"gazetteer_version": mcs.gazetteerVersion}, opts)
	if err != nil {
		return fmt.Errorf("lỗi warm up cache: %w", err)
	}
	defer cursor.Close(ctx)

	count := 0
	for cursor.Next(ctx) {
		var entry models.BreadcrumbCacheEntry
		if err := cursor.Decode(&entry); err != nil {
			mcs.logger.Warn("Lỗi decode cache entry trong warm up", zap.Error(err))
			continue
		}
		mcs.l1Cache.Add(entry.Key, entry.Breadcrumb)
		count++
	}

	mcs.logger.Info("Cache warm up hoàn thành", zap.Int("loaded_items", count))
	return cursor.Err()
}
