package router

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/listing-resolver/app/models"
)

func TestNewQueryParams(t *testing.T) {
	values, _ := url.ParseQuery("city=ha-noi&utm_source=fb&price=1-2&ward=&bedrooms=2&bedrooms=3")
	q := NewQueryParams(values)

	assert.Equal(t, QueryParams{"city": "ha-noi", "price": "1-2", "bedrooms": "2"}, q)
}

func TestMergeQuery(t *testing.T) {
	pathListing := models.PropertyListing{
		TransactionType: "mua-ban",
		Location:        models.ListingLocation{Province: "tinh-ha-nam", Ward: "xa-thanh-liem"},
		Level:           models.LevelWard,
	}

	testCases := []struct {
		name             string
		listing          models.PropertyListing
		query            QueryParams
		province, ward   string
		provKey, wardKey string
	}{
		{
			name:     "path only",
			listing:  pathListing,
			query:    QueryParams{},
			province: "tinh-ha-nam", ward: "xa-thanh-liem",
			provKey: "ha-nam", wardKey: "thanh-liem",
		},
		{
			name:     "query city wins over province and path",
			listing:  pathListing,
			query:    QueryParams{"city": "thanh-pho-ha-noi", "province": "tinh-bac-ninh"},
			province: "thanh-pho-ha-noi", ward: "xa-thanh-liem",
			provKey: "ha-noi", wardKey: "thanh-liem",
		},
		{
			name:     "query province wins over path",
			listing:  pathListing,
			query:    QueryParams{"province": "tinh-bac-ninh"},
			province: "tinh-bac-ninh", ward: "xa-thanh-liem",
			provKey: "bac-ninh", wardKey: "thanh-liem",
		},
		{
			name:     "query ward wins over wards",
			listing:  pathListing,
			query:    QueryParams{"ward": "phuong-1", "wards": "phuong-2"},
			province: "tinh-ha-nam", ward: "phuong-1",
			provKey: "ha-nam", wardKey: "1",
		},
		{
			name:     "base listing supplied by query",
			listing:  models.PropertyListing{TransactionType: "cho-thue", Level: models.LevelBase},
			query:    QueryParams{"province": "da-nang", "wards": "thi-tran-hoa-vang"},
			province: "da-nang", ward: "thi-tran-hoa-vang",
			provKey: "da-nang", wardKey: "hoa-vang",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			merged := MergeQuery(tc.listing, tc.query)
			assert.Equal(t, tc.province, merged.Province)
			assert.Equal(t, tc.ward, merged.Ward)
			assert.Equal(t, tc.provKey, merged.ProvinceKey)
			assert.Equal(t, tc.wardKey, merged.WardKey)
			assert.Equal(t, tc.listing, merged.Listing)
		})
	}
}
