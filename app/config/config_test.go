package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, 24*time.Hour, cfg.Cache.BreadcrumbTTL)
	assert.Equal(t, 20, cfg.Listing.PageSize)
	assert.Equal(t, 800*time.Millisecond, cfg.Location.Timeout)
	assert.Equal(t, "posts", cfg.Meilisearch.PostsIndex)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
app:
  env: production
cache:
  backend: hybrid
  breadcrumb_ttl: 6h
listing:
  page_size: 30
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.yaml"), content, 0o644))
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LISTING_PAGE_SIZE", "12")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":9090", cfg.GetServerAddr())
	assert.Equal(t, CacheHybrid, cfg.Cache.Backend)
	assert.Equal(t, 6*time.Hour, cfg.Cache.BreadcrumbTTL)
	assert.Equal(t, 12, cfg.Listing.PageSize, "env wins over file")
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := Load(t.TempDir())
	assert.Error(t, err)
}
