package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listing-resolver/app/models"
)

func TestClassify_Rules(t *testing.T) {
	testCases := []struct {
		name     string
		segs     []string
		rule     int
		expected models.RouteClassification
	}{
		{
			name: "fallback detail numeric",
			segs: []string{"mua-ban", "chi-tiet", "123"},
			rule: 1,
			expected: models.PropertyDetail{
				ID: "123", TransactionType: "mua-ban", IsSeoURL: false, Format: models.FormatFallback,
			},
		},
		{
			name:     "fallback detail invalid id",
			segs:     []string{"cho-thue", "chi-tiet", "can-ho-123"},
			rule:     1,
			expected: models.NotFound{},
		},
		{
			name: "new seo detail",
			segs: []string{"mua-ban", "ha-noi", "cau-giay", "68f1a2b3c4d5e6f7a8b9c0d1"},
			rule: 2,
			expected: models.PropertyDetail{
				ID:              "68f1a2b3c4d5e6f7a8b9c0d1",
				TransactionType: "mua-ban",
				Location:        &models.DetailLocation{Province: "ha-noi", Ward: "cau-giay"},
				IsSeoURL:        true,
				Format:          models.FormatNew,
			},
		},
		{
			name: "new seo detail with slug tail",
			segs: []string{"cho-thue", "ha-noi", "cau-giay", "4521-can-ho-2pn"},
			rule: 2,
			expected: models.PropertyDetail{
				ID:              "4521",
				TransactionType: "cho-thue",
				Location:        &models.DetailLocation{Province: "ha-noi", Ward: "cau-giay"},
				IsSeoURL:        true,
				Format:          models.FormatNew,
			},
		},
		{
			name: "ward category listing",
			segs: []string{"mua-ban", "ha-noi", "cau-giay", "shophouse"},
			rule: 2,
			expected: models.PropertyListing{
				TransactionType: "mua-ban",
				Location:        models.ListingLocation{Province: "ha-noi", Ward: "cau-giay", Category: "shophouse"},
				Level:           models.LevelWardCategory,
			},
		},
		{
			name: "empty fourth segment is a ward listing",
			segs: []string{"mua-ban", "ha-noi", "cau-giay", ""},
			rule: 2,
			expected: models.PropertyListing{
				TransactionType: "mua-ban",
				Location:        models.ListingLocation{Province: "ha-noi", Ward: "cau-giay"},
				Level:           models.LevelWard,
			},
		},
		{
			name: "ward listing",
			segs: []string{"mua-ban", "tinh-ha-nam", "xa-thanh-liem"},
			rule: 3,
			expected: models.PropertyListing{
				TransactionType: "mua-ban",
				Location:        models.ListingLocation{Province: "tinh-ha-nam", Ward: "xa-thanh-liem"},
				Level:           models.LevelWard,
			},
		},
		{
			name: "legacy detail",
			segs: []string{"ha-noi", "cau-giay", "98765-nha-rieng"},
			rule: 4,
			expected: models.PropertyDetail{
				ID:       "98765",
				Location: &models.DetailLocation{Province: "ha-noi", Ward: "cau-giay"},
				IsSeoURL: true,
				Format:   models.FormatOld,
			},
		},
		{
			name:     "legacy detail invalid id",
			segs:     []string{"ha-noi", "cau-giay", "nha-rieng"},
			rule:     4,
			expected: models.NotFound{},
		},
		{
			name: "province listing",
			segs: []string{"cho-thue", "da-nang"},
			rule: 5,
			expected: models.PropertyListing{
				TransactionType: "cho-thue",
				Location:        models.ListingLocation{Province: "da-nang"},
				Level:           models.LevelProvince,
			},
		},
		{
			name:     "base listing",
			segs:     []string{"mua-ban"},
			rule:     6,
			expected: models.PropertyListing{TransactionType: "mua-ban", Level: models.LevelBase},
		},
		{
			name: "project detail",
			segs: []string{"du-an", "ha-noi", "my-dinh", "12345-vinhomes"},
			rule: 7,
			expected: models.ProjectDetail{
				ID:       "12345",
				Location: models.ProjectLocation{City: "ha-noi", Ward: "my-dinh"},
				IsSeoURL: true,
			},
		},
		{
			name:     "project detail invalid id",
			segs:     []string{"du-an", "ha-noi", "my-dinh", "vinhomes"},
			rule:     7,
			expected: models.NotFound{},
		},
		{
			name: "project city listing",
			segs: []string{"du-an", "da-nang"},
			rule: 8,
			expected: models.ProjectListing{
				Location: models.ProjectListingLocation{City: "da-nang", Ward: nil},
				Level:    models.ProjectLevelCity,
			},
		},
		{
			name:     "garbage",
			segs:     []string{"random", "garbage"},
			rule:     9,
			expected: models.NotFound{},
		},
		{
			name:     "empty",
			segs:     nil,
			rule:     9,
			expected: models.NotFound{},
		},
		{
			name:     "project prefix alone",
			segs:     []string{"du-an"},
			rule:     9,
			expected: models.NotFound{},
		},
		{
			name:     "too many segments",
			segs:     []string{"mua-ban", "a", "b", "c", "d"},
			rule:     9,
			expected: models.NotFound{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			route, rule := ClassifyWithRule(tc.segs)
			assert.Equal(t, tc.rule, rule)
			assert.Equal(t, tc.expected, route)
		})
	}
}

func TestClassify_ProjectWardListing(t *testing.T) {
	route := Classify([]string{"du-an", "ha-noi", "my-dinh"})

	listing, ok := route.(models.ProjectListing)
	require.True(t, ok)
	require.NotNil(t, listing.Location.Ward)
	assert.Equal(t, "my-dinh", *listing.Location.Ward)
	assert.Equal(t, "ha-noi", listing.Location.City)
	assert.Equal(t, models.ProjectLevelWard, listing.Level)
}

func TestClassify_FallbackBeatsLegacyDetail(t *testing.T) {
	route, rule := ClassifyWithRule([]string{"mua-ban", "chi-tiet", "123"})

	assert.Equal(t, 1, rule)
	detail, ok := route.(models.PropertyDetail)
	require.True(t, ok)
	assert.Equal(t, models.FormatFallback, detail.Format)
	assert.Nil(t, detail.Location)
}

func TestClassify_ProjectThreeSegmentsIsNotLegacyDetail(t *testing.T) {
	// "du-an/x/123" has a valid trailing id but must stay a project listing
	route, rule := ClassifyWithRule([]string{"du-an", "ha-noi", "123"})

	assert.Equal(t, 8, rule)
	assert.Equal(t, models.KindProjectListing, route.Kind())
}

func TestClassify_ListingLevelMatchesLocation(t *testing.T) {
	inputs := [][]string{
		{"mua-ban"},
		{"mua-ban", "ha-noi"},
		{"cho-thue", "ha-noi", "cau-giay"},
		{"cho-thue", "ha-noi", "cau-giay", "dat-nen"},
		{"cho-thue", "ha-noi", "cau-giay", ""},
	}

	for _, segs := range inputs {
		listing, ok := Classify(segs).(models.PropertyListing)
		require.True(t, ok, segs)
		assert.Equal(t, models.LevelFor(listing.Location), listing.Level, segs)
	}
}

func TestClassify_EndToEndScenarios(t *testing.T) {
	fallback, ok := Classify([]string{"cho-thue", "chi-tiet", "507f191e810c19729de860ea-can-ho-cao-cap"}).(models.PropertyDetail)
	require.True(t, ok)
	assert.Equal(t, "507f191e810c19729de860ea", fallback.ID)
	assert.Equal(t, models.FormatFallback, fallback.Format)

	project, ok := Classify([]string{"du-an", "ha-noi", "my-dinh", "12345-vinhomes"}).(models.ProjectDetail)
	require.True(t, ok)
	assert.Equal(t, "12345", project.ID)
	assert.Equal(t, models.ProjectLocation{City: "ha-noi", Ward: "my-dinh"}, project.Location)

	assert.Equal(t, models.KindNotFound, Classify([]string{"random", "garbage"}).Kind())
}

func TestRules_OrderIsStable(t *testing.T) {
	table := Rules()
	require.Len(t, table, 9)
	for i, rule := range table {
		assert.Equal(t, i+1, rule.Number)
		assert.NotEmpty(t, rule.Name)
	}
}
