package storefront

import (
	"context"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
)

// CatalogSource fetches shop configuration, categories and products
// from the remote store. The remote end is inherently unreliable;
// callers must treat failures as empty results, not fatal errors.
type CatalogSource interface {
	Config(ctx context.Context) (catalog.ShopConfig, error)
	Categories(ctx context.Context) ([]catalog.Category, error)
	// Products returns the products for a category (empty string means
	// the whole catalog), optionally narrowed to a subcategory.
	Products(ctx context.Context, category, subcategory string) ([]catalog.Product, error)
}

// MediaResolver normalizes arbitrary image/video URLs into directly
// renderable URLs. Resolve is deterministic and idempotent: resolving
// an already-resolved URL yields the same URL.
type MediaResolver interface {
	Resolve(rawURL string) string
}

// OrderSink delivers a finished order payload to the outside world.
// Both channels are best-effort; a delivery failure never blocks the
// checkout from completing.
type OrderSink interface {
	// SendNative hands the payload to the host messaging client.
	// Errors are absorbed by the implementation.
	SendNative(ctx context.Context, payload order.Payload)
	// PostOrder submits the payload to the backend. The returned error
	// is informational; callers log and proceed.
	PostOrder(ctx context.Context, payload order.Payload) error
}
