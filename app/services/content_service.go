package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/listing-resolver/app/models"
	"github.com/listing-resolver/internal/router"
)

// ErrNotFound trang không tồn tại: route không hợp lệ hoặc không có tin đăng
var ErrNotFound = errors.New("not found")

// PostResponse kết quả getPostById
type PostResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Post *models.Post `json:"post"`
	} `json:"data"`
}

// SearchResponse kết quả searchPosts. Data là mảng tin đăng hoặc object {posts, total, page, page_size}.
type SearchResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// PostPage dạng object của SearchResponse.Data
type PostPage struct {
	Posts    []models.Post `json:"posts"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// ContentService kho nội dung tin đăng
type ContentService interface {
	GetPostByID(ctx context.Context, id string) (*PostResponse, error)
	SearchPosts(ctx context.Context, filters router.SearchFilters, page, pageSize int) (*SearchResponse, error)
	IncrementViews(ctx context.Context, id string) error
}

// ExtractPosts đọc danh sách tin đăng từ cả hai dạng Data
func ExtractPosts(resp *SearchResponse) ([]models.Post, error) {
	if resp == nil || !resp.Success {
		return []models.Post{}, nil
	}

	data := bytes.TrimSpace(resp.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return []models.Post{}, nil
	}

	switch data[0] {
	case '[':
		var posts []models.Post
		if err := json.Unmarshal(data, &posts); err != nil {
			return nil, fmt.Errorf("lỗi decode danh sách tin đăng: %w", err)
		}
		return posts, nil
	case '{':
		var page PostPage
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("lỗi decode trang tin đăng: %w", err)
		}
		if page.Posts == nil {
			return []models.Post{}, nil
		}
		return page.Posts, nil
	default:
		return nil, fmt.Errorf("dạng dữ liệu tìm kiếm không hỗ trợ: %q", data[0])
	}
}
