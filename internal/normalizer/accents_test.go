package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "thanh-pho-ha-noi", Slugify("Thành phố Hà Nội"))
	assert.Equal(t, "xa-thanh-liem", Slugify("Xã Thanh Liêm"))
	assert.Equal(t, "phuong-12", Slugify("  Phường 12 "))
	assert.Equal(t, "", Slugify(""))
}

func TestCompareKey(t *testing.T) {
	assert.Equal(t, "da nang", CompareKey("Đà Nẵng"))
	assert.Equal(t, "da nang", CompareKey("da-nang"))
	assert.Equal(t, CompareKey("Hồ Chí Minh"), CompareKey("ho-chi-minh"))
}
