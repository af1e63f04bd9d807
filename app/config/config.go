package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Cache backends
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheMongo  = "mongo"
	CacheHybrid = "hybrid"
)

type Config struct {
	App         AppConfig
	Mongo       MongoConfig
	Meilisearch MeiliConfig
	Redis       RedisConfig
	Cache       CacheConfig
	Listing     ListingConfig
	Location    LocationConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type MongoConfig struct {
	URL      string
	Database string
}

type MeiliConfig struct {
	URL        string
	MasterKey  string
	UnitsIndex string
	PostsIndex string
}

type RedisConfig struct {
	URL string
}

type CacheConfig struct {
	Backend          string
	L1Size           int
	BreadcrumbTTL    time.Duration
	GazetteerVersion string
}

type ListingConfig struct {
	PageSize int
}

type LocationConfig struct {
	Timeout        time.Duration
	FuzzyThreshold float64
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("mongo.url", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "listing_resolver")
	v.SetDefault("meilisearch.url", "http://localhost:7700")
	v.SetDefault("meilisearch.master_key", "")
	v.SetDefault("meilisearch.units_index", "admin_units")
	v.SetDefault("meilisearch.posts_index", "posts")
	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("cache.backend", CacheMemory)
	v.SetDefault("cache.l1_size", 10000)
	v.SetDefault("cache.breadcrumb_ttl", "24h")
	v.SetDefault("cache.gazetteer_version", "2025.07")
	v.SetDefault("listing.page_size", 20)
	v.SetDefault("location.timeout", "800ms")
	v.SetDefault("location.fuzzy_threshold", 0.85)
}

// Load đọc config/app.yaml (hoặc các path truyền vào), ENV ghi đè: APP_PORT, MONGO_URL, ...
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("app")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./config", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Port: v.GetString("app.port"),
			Env:  v.GetString("app.env"),
		},
		Mongo: MongoConfig{
			URL:      v.GetString("mongo.url"),
			Database: v.GetString("mongo.database"),
		},
		Meilisearch: MeiliConfig{
			URL:        v.GetString("meilisearch.url"),
			MasterKey:  v.GetString("meilisearch.master_key"),
			UnitsIndex: v.GetString("meilisearch.units_index"),
			PostsIndex: v.GetString("meilisearch.posts_index"),
		},
		Redis: RedisConfig{
			URL: v.GetString("redis.url"),
		},
		Cache: CacheConfig{
			Backend:          strings.ToLower(v.GetString("cache.backend")),
			L1Size:           v.GetInt("cache.l1_size"),
			BreadcrumbTTL:    v.GetDuration("cache.breadcrumb_ttl"),
			GazetteerVersion: v.GetString("cache.gazetteer_version"),
		},
		Listing: ListingConfig{
			PageSize: v.GetInt("listing.page_size"),
		},
		Location: LocationConfig{
			Timeout:        v.GetDuration("location.timeout"),
			FuzzyThreshold: v.GetFloat64("location.fuzzy_threshold"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate kiểm tra các giá trị bắt buộc
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheMemory, CacheRedis, CacheMongo, CacheHybrid:
	default:
		return fmt.Errorf("cache.backend không hợp lệ: %q", c.Cache.Backend)
	}
	if c.Listing.PageSize <= 0 {
		return fmt.Errorf("listing.page_size phải > 0, nhận %d", c.Listing.PageSize)
	}
	if c.Cache.L1Size <= 0 {
		return fmt.Errorf("cache.l1_size phải > 0, nhận %d", c.Cache.L1Size)
	}
	if c.Location.FuzzyThreshold < 0 || c.Location.FuzzyThreshold > 1 {
		return fmt.Errorf("location.fuzzy_threshold phải trong [0,1], nhận %v", c.Location.FuzzyThreshold)
	}
	return nil
}

// IsProduction môi trường production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c *Config) GetServerAddr() string {
	return ":" + c.App.Port
}
