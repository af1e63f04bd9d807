package router

import (
	"github.com/listing-resolver/app/models"
)

// Rule một dòng trong bảng phân loại URL. Thứ tự trong bảng là độ ưu tiên.
type Rule struct {
	Number int
	Name   string
	Match  func(segs []string) bool
	Build  func(segs []string) models.RouteClassification
}

// rules evaluated top to bottom; the first match wins.
var rules = []Rule{
	{
		Number: 1,
		Name:   "fallback-detail",
		Match: func(segs []string) bool {
			return len(segs) == 3 && models.IsTransactionPrefix(segs[0]) && segs[1] == "chi-tiet"
		},
		Build: func(segs []string) models.RouteClassification {
			id, ok := ExtractID(segs[2])
			if !ok {
				return models.NotFound{}
			}
			return models.PropertyDetail{
				ID:              id,
				TransactionType: segs[0],
				IsSeoURL:        false,
				Format:          models.FormatFallback,
			}
		},
	},
	{
		Number: 2,
		Name:   "seo-detail-or-ward-category",
		Match: func(segs []string) bool {
			return len(segs) == 4 && models.IsTransactionPrefix(segs[0])
		},
		Build: func(segs []string) models.RouteClassification {
			token := IDToken(segs[3])
			switch {
			case IsValidIdentifier(token):
				return models.PropertyDetail{
					ID:              token,
					TransactionType: segs[0],
					Location:        &models.DetailLocation{Province: segs[1], Ward: segs[2]},
					IsSeoURL:        true,
					Format:          models.FormatNew,
				}
			case token != "":
				return models.PropertyListing{
					TransactionType: segs[0],
					Location:        models.ListingLocation{Province: segs[1], Ward: segs[2], Category: segs[3]},
					Level:           models.LevelWardCategory,
				}
			default:
				return models.PropertyListing{
					TransactionType: segs[0],
					Location:        models.ListingLocation{Province: segs[1], Ward: segs[2]},
					Level:           models.LevelWard,
				}
			}
		},
	},
	{
		Number: 3,
		Name:   "ward-listing",
		Match: func(segs []string) bool {
			return len(segs) == 3 && models.IsTransactionPrefix(segs[0])
		},
		Build: func(segs []string) models.RouteClassification {
			return models.PropertyListing{
				TransactionType: segs[0],
				Location:        models.ListingLocation{Province: segs[1], Ward: segs[2]},
				Level:           models.LevelWard,
			}
		},
	},
	{
		Number: 4,
		Name:   "legacy-detail",
		Match: func(segs []string) bool {
			// transaction and project prefixes have their own 3-segment forms
			return len(segs) == 3 && !models.IsTransactionPrefix(segs[0]) && segs[0] != models.ProjectPrefix
		},
		Build: func(segs []string) models.RouteClassification {
			id, ok := ExtractID(segs[2])
			if !ok {
				return models.NotFound{}
			}
			return models.PropertyDetail{
				ID:       id,
				Location: &models.DetailLocation{Province: segs[0], Ward: segs[1]},
				IsSeoURL: true,
				Format:   models.FormatOld,
			}
		},
	},
	{
		Number: 5,
		Name:   "province-listing",
		Match: func(segs []string) bool {
			return len(segs) == 2 && models.IsTransactionPrefix(segs[0])
		},
		Build: func(segs []string) models.RouteClassification {
			return models.PropertyListing{
				TransactionType: segs[0],
				Location:        models.ListingLocation{Province: segs[1]},
				Level:           models.LevelProvince,
			}
		},
	},
	{
		Number: 6,
		Name:   "base-listing",
		Match: func(segs []string) bool {
			return len(segs) == 1 && models.IsTransactionPrefix(segs[0])
		},
		Build: func(segs []string) models.RouteClassification {
			return models.PropertyListing{
				TransactionType: segs[0],
				Level:           models.LevelBase,
			}
		},
	},
	{
		Number: 7,
		Name:   "project-detail",
		Match: func(segs []string) bool {
			return len(segs) == 4 && segs[0] == models.ProjectPrefix
		},
		Build: func(segs []string) models.RouteClassification {
			id, ok := ExtractID(segs[3])
			if !ok {
				return models.NotFound{}
			}
			return models.ProjectDetail{
				ID:       id,
				Location: models.ProjectLocation{City: segs[1], Ward: segs[2]},
				IsSeoURL: true,
			}
		},
	},
	{
		Number: 8,
		Name:   "project-listing",
		Match: func(segs []string) bool {
			return (len(segs) == 2 || len(segs) == 3) && segs[0] == models.ProjectPrefix
		},
		Build: func(segs []string) models.RouteClassification {
			if len(segs) == 2 {
				return models.ProjectListing{
					Location: models.ProjectListingLocation{City: segs[1]},
					Level:    models.ProjectLevelCity,
				}
			}
			ward := segs[2]
			return models.ProjectListing{
				Location: models.ProjectListingLocation{City: segs[1], Ward: &ward},
				Level:    models.ProjectLevelWard,
			}
		},
	},
	{
		Number: 9,
		Name:   "not-found",
		Match:  func(segs []string) bool { return true },
		Build:  func(segs []string) models.RouteClassification { return models.NotFound{} },
	},
}

// Rules trả về bản sao bảng luật theo thứ tự ưu tiên
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Classify phân loại danh sách segment thành một loại trang. Không bao giờ trả lỗi:
// ID không hợp lệ hay URL không khớp luật nào đều thành NotFound.
func Classify(segs []string) models.RouteClassification {
	route, _ := ClassifyWithRule(segs)
	return route
}

// ClassifyWithRule như Classify, kèm số thứ tự luật đã khớp
func ClassifyWithRule(segs []string) (models.RouteClassification, int) {
	for _, rule := range rules {
		if rule.Match(segs) {
			return rule.Build(segs), rule.Number
		}
	}
	return models.NotFound{}, 9
}
