// Package cache provides a Redis read-through decorator for the
// catalog source. A broken or cold cache never fails a request; the
// decorated source is always the fallback.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/application/storefront"
	"github.com/storefront/backend/internal/domain/catalog"
)

const defaultTTL = 5 * time.Minute

// CachedCatalogSource wraps a CatalogSource with a Redis cache
type CachedCatalogSource struct {
	next   storefront.CatalogSource
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedCatalogSource creates a read-through cache in front of next
func NewCachedCatalogSource(next storefront.CatalogSource, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedCatalogSource {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedCatalogSource{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Config returns the shop configuration, cached
func (c *CachedCatalogSource) Config(ctx context.Context) (catalog.ShopConfig, error) {
	var cfg catalog.ShopConfig
	if c.lookup(ctx, "catalog:config", &cfg) {
		return cfg, nil
	}

	cfg, err := c.next.Config(ctx)
	if err != nil {
		return catalog.ShopConfig{}, err
	}
	c.store(ctx, "catalog:config", cfg)
	return cfg, nil
}

// Categories returns the category tiles, cached
func (c *CachedCatalogSource) Categories(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	if c.lookup(ctx, "catalog:categories", &categories) {
		return categories, nil
	}

	categories, err := c.next.Categories(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, "catalog:categories", categories)
	return categories, nil
}

// Products returns the products of a category, cached per filter pair
func (c *CachedCatalogSource) Products(ctx context.Context, category, subcategory string) ([]catalog.Product, error) {
	key := fmt.Sprintf("catalog:products:%s:%s", category, subcategory)

	var products []catalog.Product
	if c.lookup(ctx, key, &products) {
		return products, nil
	}

	products, err := c.next.Products(ctx, category, subcategory)
	if err != nil {
		return nil, err
	}
	c.store(ctx, key, products)
	return products, nil
}

// lookup reports whether a cached value was found and decoded into out.
// Any cache failure is treated as a miss.
func (c *CachedCatalogSource) lookup(ctx context.Context, key string, out any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.logger.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn("corrupted cache entry dropped", zap.String("key", key), zap.Error(err))
		_ = c.client.Del(ctx, key)
		return false
	}
	return true
}

// store writes a value to the cache, best-effort
func (c *CachedCatalogSource) store(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache store failed", zap.String("key", key), zap.Error(err))
	}
}

// Ensure CachedCatalogSource implements CatalogSource
var _ storefront.CatalogSource = (*CachedCatalogSource)(nil)
