package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"catalog-service/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	ProductCachePrefix     = "catalog:product:v:"
	ProductListCachePrefix = "catalog:products:v:"
	CacheVersionKey        = "catalog:version"
)

// CacheManager handles Redis caching for product reads. Every cache key
// embeds a version counter; writes invalidate by bumping the version rather
// than enumerating keys.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheManager(redis *redis.Client) *CacheManager {
	return &CacheManager{
		redis: redis,
		ttl:   DefaultCacheTTL,
	}
}

// GetProductList retrieves the cached product list
func (cm *CacheManager) GetProductList(ctx context.Context) ([]models.Product, bool) {
	version, err := cm.getCacheVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	cachedData, err := cm.redis.Get(ctx, cm.listKey(version)).Result()
	if err != nil {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(cachedData), &products); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return products, true
}

// SetProductListAsync caches the product list asynchronously
func (cm *CacheManager) SetProductListAsync(products []models.Product) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.getCacheVersion(bgCtx)
		if err != nil || version == 0 {
			return
		}

		jsonBytes, err := json.Marshal(products)
		if err != nil {
			zap.L().Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}

		if err := cm.redis.Set(bgCtx, cm.listKey(version), jsonBytes, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// GetProduct retrieves a cached product detail
func (cm *CacheManager) GetProduct(ctx context.Context, productID string) (*models.Product, bool) {
	version, err := cm.getCacheVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	cachedData, err := cm.redis.Get(ctx, cm.detailKey(version, productID)).Result()
	if err != nil {
		return nil, false
	}

	var product models.Product
	if err := json.Unmarshal([]byte(cachedData), &product); err != nil {
		zap.L().Warn("Failed to unmarshal cached product", zap.Error(err), zap.String("product_id", productID))
		return nil, false
	}
	return &product, true
}

// SetProductAsync caches a single product asynchronously
func (cm *CacheManager) SetProductAsync(productID string, product *models.Product) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.getCacheVersion(bgCtx)
		if err != nil || version == 0 {
			return
		}

		productJSON, err := json.Marshal(product)
		if err != nil {
			zap.L().Warn("Failed to marshal product for cache", zap.Error(err), zap.String("product_id", productID))
			return
		}

		if err := cm.redis.Set(bgCtx, cm.detailKey(version, productID), productJSON, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product", zap.Error(err), zap.String("product_id", productID))
		}
	}()
}

// Invalidate drops all cached reads by bumping the cache version.
func (cm *CacheManager) Invalidate(ctx context.Context) {
	if err := cm.redis.Incr(ctx, CacheVersionKey).Err(); err != nil {
		zap.L().Warn("Failed to bump cache version", zap.Error(err))
	}
}

func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	version, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
	if err == redis.Nil {
		if err := cm.redis.Set(ctx, CacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return version, nil
}

func (cm *CacheManager) listKey(version int64) string {
	return fmt.Sprintf("%s%d", ProductListCachePrefix, version)
}

func (cm *CacheManager) detailKey(version int64, productID string) string {
	return fmt.Sprintf("%s%d:%s", ProductCachePrefix, version, productID)
}
