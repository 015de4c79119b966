package cache

import (
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/application/storefront"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// WrapCatalogSource decorates the source with a Redis cache when
// caching is enabled in the configuration. With caching disabled the
// source is returned unchanged.
func WrapCatalogSource(cfg *config.RedisConfig, source storefront.CatalogSource, logger *zap.Logger) (storefront.CatalogSource, error) {
	if !cfg.Enabled {
		return source, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return NewCachedCatalogSource(source, client, cfg.TTL, logger), nil
}
