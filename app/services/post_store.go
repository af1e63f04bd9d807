package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/listing-resolver/app/models"
	"github.com/listing-resolver/internal/router"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// PostSearcher tìm kiếm full-text tin đăng
type PostSearcher interface {
	Search(ctx context.Context, filters router.SearchFilters, page, pageSize int) ([]models.Post, int64, error)
}

// PostStore ContentService dùng MongoDB cho chi tiết và Meilisearch cho tìm kiếm
type PostStore struct {
	collection *mongo.Collection
	searcher   PostSearcher
	logger     *zap.Logger
}

// NewPostStore tạo mới PostStore
func NewPostStore(db *mongo.Database, searcher PostSearcher, logger *zap.Logger) *PostStore {
	return &PostStore{
		collection: db.Collection("posts"),
		searcher:   searcher,
		logger:     logger,
	}
}

// postFilter 24-hex → _id, số → legacy_id
func postFilter(id string) (bson.M, error) {
	if router.IsLegacyID(id) {
		return bson.M{"legacy_id": id}, nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("id không hợp lệ %q: %w", id, err)
	}
	return bson.M{"_id": oid}, nil
}

// GetPostByID lấy tin đăng theo id; Success=false khi không có
func (ps *PostStore) GetPostByID(ctx context.Context, id string) (*PostResponse, error) {
	filter, err := postFilter(id)
	if err != nil {
		return &PostResponse{Success: false}, nil
	}

	var post models.Post
	err = ps.collection.FindOne(ctx, filter).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &PostResponse{Success: false}, nil
		}
		return nil, fmt.Errorf("lỗi query tin đăng: %w", err)
	}

	resp := &PostResponse{Success: true}
	resp.Data.Post = &post
	return resp, nil
}

// SearchPosts tìm tin đăng, trả về dạng object
func (ps *PostStore) SearchPosts(ctx context.Context, filters router.SearchFilters, page, pageSize int) (*SearchResponse, error) {
	posts, total, err := ps.searcher.Search(ctx, filters, page, pageSize)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(PostPage{Posts: posts, Total: total, Page: page, PageSize: pageSize})
	if err != nil {
		return nil, fmt.Errorf("lỗi marshal kết quả tìm kiếm: %w", err)
	}
	return &SearchResponse{Success: true, Data: data}, nil
}

// IncrementViews tăng lượt xem
func (ps *PostStore) IncrementViews(ctx context.Context, id string) error {
	filter, err := postFilter(id)
	if err != nil {
		return err
	}

	_, err = ps.collection.UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return fmt.Errorf("lỗi tăng lượt xem: %w", err)
	}
	return nil
}

// EnsureIndexes tạo index cho collection posts
func (ps *PostStore) EnsureIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "legacy_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys: bson.D{bson.E{Key: "slug", Value: 1}},
		},
		{
			Keys: bson.D{
				bson.E{Key: "status", Value: 1},
				bson.E{Key: "province", Value: 1},
				bson.E{Key: "ward", Value: 1},
			},
		},
	}

	if _, err := ps.collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("lỗi tạo indexes cho posts: %w", err)
	}
	return nil
}

// UpsertPosts ghi tin đăng vào MongoDB. Tin có legacy_id được khớp theo legacy_id, còn lại theo _id.
func (ps *PostStore) UpsertPosts(ctx context.Context, posts []models.Post) ([]models.Post, error) {
	now := time.Now()
	saved := make([]models.Post, 0, len(posts))

	for _, post := range posts {
		if post.CreatedAt.IsZero() {
			post.CreatedAt = now
		}
		post.UpdatedAt = now

		var filter bson.M
		switch {
		case !post.ID.IsZero():
			filter = bson.M{"_id": post.ID}
		case post.LegacyID != "":
			filter = bson.M{"legacy_id": post.LegacyID}
		default:
			post.ID = primitive.NewObjectID()
			filter = bson.M{"_id": post.ID}
		}

		set := bson.M{
			"title":       post.Title,
			"slug":        post.Slug,
			"description": post.Description,
			"type":        post.Type,
			"category":    post.Category,
			"province":    post.Province,
			"ward":        post.Ward,
			"price":       post.Price,
			"area":        post.Area,
			"bedrooms":    post.Bedrooms,
			"bathrooms":   post.Bathrooms,
			"status":      post.Status,
			"updated_at":  post.UpdatedAt,
		}
		// index legacy_id là sparse
		if post.LegacyID != "" {
			set["legacy_id"] = post.LegacyID
		}
		// views do IncrementViews quản lý
		update := bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{
				"views":      int64(0),
				"created_at": post.CreatedAt,
			},
		}
		opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

		var stored models.Post
		if err := ps.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
			return nil, fmt.Errorf("lỗi lưu tin đăng %q: %w", post.Slug, err)
		}
		saved = append(saved, stored)
	}

	ps.logger.Info("Đã lưu tin đăng", zap.Int("count", len(saved)))
	return saved, nil
}
