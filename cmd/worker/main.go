package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/listing-resolver/app/bootstrap"
	"github.com/listing-resolver/app/config"
	"github.com/listing-resolver/app/services"
	"go.uber.org/zap"
)

// Worker đồng bộ định kỳ tin đăng từ MongoDB sang index Meilisearch
func main() {
	interval := flag.Duration("interval", 5*time.Minute, "chu kỳ đồng bộ")
	batchSize := flag.Int("batch", 500, "số tin đăng mỗi lần nạp")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Starting Listing Resolver Worker...", zap.Duration("interval", *interval))

	mongoClient, err := bootstrap.ConnectMongo(cfg.Mongo, logger)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(context.Background())
	database := mongoClient.Database(cfg.Mongo.Database)

	gazetteer, postIndex, err := bootstrap.NewSearchers(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create Meilisearch searchers", zap.Error(err))
	}
	admin := services.NewAdminService(database, gazetteer, postIndex, services.NewPostStore(database, postIndex, logger), nil, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// lần đầu đồng bộ toàn bộ
	var since time.Time
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		started := time.Now()
		if _, err := admin.ReindexPosts(ctx, since, *batchSize); err != nil {
			logger.Error("Reindex thất bại", zap.Error(err))
		} else {
			since = started
		}

		select {
		case <-ctx.Done():
			logger.Info("Worker exited")
			return
		case <-ticker.C:
		}
	}
}
