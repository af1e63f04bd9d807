package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/listing-resolver/app/models"
	"github.com/listing-resolver/internal/breadcrumb"
	"github.com/listing-resolver/internal/router"
	"go.uber.org/zap"
)

// PageResult dữ liệu trang giao cho tầng render
type PageResult struct {
	Classification models.RouteClassification
	Rule           int
	Post           *models.Post
	Posts          []models.Post
	Filters        router.SearchFilters
	Breadcrumb     *models.BreadcrumbData
	Page           int
	PageSize       int
}

// Kind loại trang
func (r *PageResult) Kind() models.RouteKind {
	return r.Classification.Kind()
}

// PageService điều phối: phân loại route, lấy nội dung và breadcrumb
type PageService struct {
	content  ContentService
	resolver *breadcrumb.Resolver
	pageSize int
	logger   *zap.Logger
}

// NewPageService tạo mới PageService
func NewPageService(content ContentService, locations LocationService, pageSize int, logger *zap.Logger) *PageService {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &PageService{
		content:  content,
		resolver: breadcrumb.NewResolver(locations, logger),
		pageSize: pageSize,
		logger:   logger,
	}
}

// PageSize số tin mỗi trang
func (ps *PageService) PageSize() int {
	return ps.pageSize
}

// Resolve xử lý một request trang. Trả ErrNotFound khi route không hợp lệ hoặc không có tin đăng.
func (ps *PageService) Resolve(ctx context.Context, segments []string, query router.QueryParams, page int) (*PageResult, error) {
	route, rule := router.ClassifyWithRule(segments)
	ps.logger.Debug("Phân loại route",
		zap.Strings("segments", segments),
		zap.String("kind", string(route.Kind())),
		zap.Int("rule", rule))

	result := &PageResult{Classification: route, Rule: rule}

	switch r := route.(type) {
	case models.PropertyDetail:
		return ps.resolveDetail(ctx, r, result)
	case models.PropertyListing:
		if page < 1 {
			page = 1
		}
		result.Page, result.PageSize = page, ps.pageSize
		return ps.resolveListing(ctx, r, query, result)
	case models.ProjectDetail:
		result.Breadcrumb = ps.breadcrumb(ctx, r.Location.City, r.Location.Ward)
		return result, nil
	case models.ProjectListing:
		ward := ""
		if r.Location.Ward != nil {
			ward = *r.Location.Ward
		}
		result.Breadcrumb = ps.breadcrumb(ctx, r.Location.City, ward)
		return result, nil
	default:
		return nil, ErrNotFound
	}
}

// Classify chỉ phân loại, không gọi dịch vụ ngoài
func (ps *PageService) Classify(segments []string) (models.RouteClassification, int) {
	return router.ClassifyWithRule(segments)
}

func (ps *PageService) breadcrumb(ctx context.Context, province, ward string) *models.BreadcrumbData {
	data := ps.resolver.Resolve(ctx, province, ward).ToData()
	return &data
}

func (ps *PageService) resolveDetail(ctx context.Context, d models.PropertyDetail, result *PageResult) (*PageResult, error) {
	var (
		wg    sync.WaitGroup
		crumb *models.BreadcrumbData
	)
	if d.Location != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			crumb = ps.breadcrumb(ctx, d.Location.Province, d.Location.Ward)
		}()
	}

	resp, err := ps.content.GetPostByID(ctx, d.ID)
	wg.Wait()
	if err != nil {
		return nil, fmt.Errorf("lỗi lấy tin đăng %s: %w", d.ID, err)
	}
	if resp == nil || !resp.Success || resp.Data.Post == nil {
		return nil, ErrNotFound
	}
	post := resp.Data.Post

	if crumb == nil {
		crumb = ps.breadcrumb(ctx, post.Province, post.Ward)
	}

	if err := ps.content.IncrementViews(ctx, d.ID); err != nil {
		ps.logger.Warn("Không thể tăng lượt xem", zap.Error(err), zap.String("id", d.ID))
	}

	result.Post = post
	result.Breadcrumb = crumb
	return result, nil
}

func (ps *PageService) resolveListing(ctx context.Context, l models.PropertyListing, query router.QueryParams, result *PageResult) (*PageResult, error) {
	merged := router.MergeQuery(l, query)
	filters := router.BuildSearchFilters(merged, query)
	result.Filters = filters

	var (
		wg    sync.WaitGroup
		crumb *models.BreadcrumbData
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		crumb = ps.breadcrumb(ctx, merged.Province, merged.Ward)
	}()

	resp, err := ps.content.SearchPosts(ctx, filters, result.Page, result.PageSize)
	wg.Wait()
	if err != nil {
		return nil, fmt.Errorf("lỗi tìm kiếm tin đăng: %w", err)
	}

	posts, err := ExtractPosts(resp)
	if err != nil {
		return nil, err
	}

	result.Posts = posts
	result.Breadcrumb = crumb
	return result, nil
}
