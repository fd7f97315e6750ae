package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/akjilan/digital-ecommerce/models"
	aws_pkg "github.com/akjilan/digital-ecommerce/pkg/aws"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	CatalogPageCachePrefix = "catalog:v:"
	CatalogVersionKey      = "catalog:version"
	DefaultCacheTTL        = 60 * time.Second
)

// CatalogPage is the cached wire form of one catalog page.
type CatalogPage = models.PageResponse[models.ProductSummary]

// CatalogCache is the read-through cache in front of the catalog query.
type CatalogCache interface {
	GetCatalogPage(ctx context.Context, spec models.ProductFilterSpec) (*CatalogPage, bool)
	SetCatalogPageAsync(spec models.ProductFilterSpec, page CatalogPage)
}

// CacheManager handles catalog page caching in Redis. Keys embed a version
// number so Invalidate drops every cached page at once.
type CacheManager struct {
	redis   *redis.Client
	ttl     time.Duration
	metrics aws_pkg.MetricsRecorder
	logger  *zap.Logger
}

// NewCacheManager creates a CacheManager. A nil client disables caching.
func NewCacheManager(client *redis.Client, ttl time.Duration, metrics aws_pkg.MetricsRecorder, logger *zap.Logger) *CacheManager {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CacheManager{redis: client, ttl: ttl, metrics: metrics, logger: logger}
}

// Enabled reports whether a Redis client is configured.
func (cm *CacheManager) Enabled() bool {
	return cm != nil && cm.redis != nil
}

// GetCatalogPage returns the cached page for spec, if any.
func (cm *CacheManager) GetCatalogPage(ctx context.Context, spec models.ProductFilterSpec) (*CatalogPage, bool) {
	if !cm.Enabled() {
		return nil, false
	}

	version, err := cm.getCacheVersion(ctx)
	if err != nil {
		cm.count(aws_pkg.MetricCatalogCacheMisses)
		return nil, false
	}

	cached, err := cm.redis.Get(ctx, CatalogPageKey(version, spec)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			cm.logger.Warn("Failed to read cached catalog page", zap.Error(err))
		}
		cm.count(aws_pkg.MetricCatalogCacheMisses)
		return nil, false
	}

	var page CatalogPage
	if err := json.Unmarshal(cached, &page); err != nil {
		cm.logger.Warn("Failed to unmarshal cached catalog page", zap.Error(err))
		cm.count(aws_pkg.MetricCatalogCacheMisses)
		return nil, false
	}

	cm.count(aws_pkg.MetricCatalogCacheHits)
	return &page, true
}

// SetCatalogPageAsync caches a page in the background.
func (cm *CacheManager) SetCatalogPageAsync(spec models.ProductFilterSpec, page CatalogPage) {
	if !cm.Enabled() {
		return
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.getCacheVersion(bgCtx)
		if err != nil {
			return
		}

		payload, err := json.Marshal(page)
		if err != nil {
			cm.logger.Warn("Failed to marshal catalog page for cache", zap.Error(err))
			return
		}

		if err := cm.redis.Set(bgCtx, CatalogPageKey(version, spec), payload, cm.ttl).Err(); err != nil {
			cm.logger.Warn("Failed to cache catalog page", zap.Error(err))
		}
	}()
}

// Invalidate drops every cached catalog page by bumping the version.
func (cm *CacheManager) Invalidate(ctx context.Context) error {
	if !cm.Enabled() {
		return nil
	}

	newVersion, err := cm.redis.Incr(ctx, CatalogVersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}

	cm.logger.Info("Catalog cache invalidated", zap.Int64("new_version", newVersion))
	return nil
}

func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	ver, err := cm.redis.Get(ctx, CatalogVersionKey).Int64()
	if err == nil && ver > 0 {
		return ver, nil
	}
	if errors.Is(err, redis.Nil) {
		// SetNX so concurrent first readers agree on the starting version.
		if err := cm.redis.SetNX(ctx, CatalogVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return cm.redis.Get(ctx, CatalogVersionKey).Int64()
	}
	if err == nil {
		err = fmt.Errorf("invalid cache version %d", ver)
	}
	return 0, err
}

func (cm *CacheManager) count(metric string) {
	if cm.metrics == nil || !cm.metrics.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = cm.metrics.RecordCount(ctx, metric, nil)
	}()
}

// CatalogPageKey is the Redis key for one cached page.
func CatalogPageKey(version int64, spec models.ProductFilterSpec) string {
	return fmt.Sprintf("%s%d:%s", CatalogPageCachePrefix, version, spec.CacheKey())
}
