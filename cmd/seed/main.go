package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/listing-resolver/app/bootstrap"
	"github.com/listing-resolver/app/config"
	"github.com/listing-resolver/app/requests"
	"github.com/listing-resolver/app/services"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func main() {
	unitsFile := flag.String("units", "", "YAML file chứa gazetteer (gazetteer_version, units)")
	postsFile := flag.String("posts", "", "YAML file chứa tin đăng (posts)")
	buildIndexes := flag.Bool("build-indexes", true, "cấu hình index Meilisearch trước khi seed")
	flag.Parse()

	if *unitsFile == "" && *postsFile == "" {
		fmt.Fprintln(os.Stderr, "usage: seed -units units.yaml [-posts posts.yaml]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger, *unitsFile, *postsFile, *buildIndexes); err != nil {
		logger.Fatal("Seed thất bại", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger, unitsFile, postsFile string, buildIndexes bool) error {
	ctx := context.Background()

	mongoClient, err := bootstrap.ConnectMongo(cfg.Mongo, logger)
	if err != nil {
		return err
	}
	defer mongoClient.Disconnect(ctx)
	database := mongoClient.Database(cfg.Mongo.Database)

	gazetteer, postIndex, err := bootstrap.NewSearchers(cfg, logger)
	if err != nil {
		return err
	}
	cache, err := bootstrap.NewBreadcrumbCache(cfg, database, logger)
	if err != nil {
		return err
	}
	defer cache.Close()

	postStore := services.NewPostStore(database, postIndex, logger)
	admin := services.NewAdminService(database, gazetteer, postIndex, postStore, cache, logger)

	if buildIndexes {
		if err := admin.BuildIndexes(); err != nil {
			return err
		}
	}

	if unitsFile != "" {
		seed, err := readSeedFile(unitsFile)
		if err != nil {
			return err
		}
		version := seed.GazetteerVersion
		if version == "" {
			version = cfg.Cache.GazetteerVersion
		}

		if validation := services.ValidateUnits(services.PrepareUnits(seed.Units)); !validation.Passed {
			for _, w := range validation.Warnings {
				logger.Warn("Gazetteer validation", zap.String("warning", w))
			}
			return fmt.Errorf("gazetteer không hợp lệ: %d cảnh báo", len(validation.Warnings))
		}

		result, err := admin.SeedUnits(ctx, version, seed.Units)
		if err != nil {
			return err
		}
		logger.Info("Đã seed gazetteer",
			zap.String("gazetteer_version", version),
			zap.Int("units", result.UnitsProcessed))
	}

	if postsFile != "" {
		if err := postStore.EnsureIndexes(ctx); err != nil {
			logger.Warn("Không thể tạo indexes cho posts", zap.Error(err))
		}

		seed, err := readSeedFile(postsFile)
		if err != nil {
			return err
		}
		result, err := admin.SeedPosts(ctx, seed.Posts)
		if err != nil {
			return err
		}
		logger.Info("Đã seed tin đăng", zap.Int("posts", result.PostsProcessed))
	}

	return nil
}

func readSeedFile(path string) (*requests.SeedFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("không đọc được %s: %w", path, err)
	}

	var seed requests.SeedFile
	if err := yaml.Unmarshal(b, &seed); err != nil {
		return nil, fmt.Errorf("lỗi parse YAML %s: %w", path, err)
	}
	return &seed, nil
}
