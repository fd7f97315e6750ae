package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/akjilan/digital-ecommerce/common/logger"
	"github.com/akjilan/digital-ecommerce/controllers"
	"github.com/akjilan/digital-ecommerce/database"
	"github.com/akjilan/digital-ecommerce/models"
	"github.com/akjilan/digital-ecommerce/repository"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// seed-catalog upserts products by slug, so running it twice leaves the
// catalog unchanged. Cached catalog pages are invalidated afterwards.
func main() {
	_ = godotenv.Load()

	var file, redisURL string
	flag.StringVar(&file, "file", "", "JSON file with products (defaults to the demo catalog)")
	flag.StringVar(&redisURL, "redis", os.Getenv("REDIS_URL"), "Redis URL for cache invalidation")
	flag.Parse()

	log := logger.Initialize(os.Getenv("APP_ENV"))
	defer log.Sync()

	products, err := loadCatalog(file)
	if err != nil {
		log.Fatal("Failed to load catalog", zap.Error(err))
	}

	pgCfg := database.PostgresConfigFromEnv()
	if err := pgCfg.Validate(); err != nil {
		log.Fatal("Database config incomplete", zap.Error(err))
	}
	if err := database.Connect(pgCfg, log, &models.Product{}); err != nil {
		log.Fatal("DB connection failed", zap.Error(err))
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	repo := repository.NewGormProductRepository(database.DB)
	for i := range products {
		if err := repo.Upsert(ctx, &products[i]); err != nil {
			log.Fatal("Upsert failed", zap.String("slug", products[i].Slug), zap.Error(err))
		}
	}
	log.Info("Catalog seeded", zap.Int("products", len(products)))

	redisClient, err := database.NewRedisClient(ctx, redisURL, log)
	if err != nil {
		log.Warn("Skipping cache invalidation", zap.Error(err))
		return
	}
	if redisClient == nil {
		return
	}
	defer redisClient.Close()

	if err := controllers.NewCacheManager(redisClient, 0, nil, log).Invalidate(ctx); err != nil {
		log.Warn("Cache invalidation failed", zap.Error(err))
	}
}
