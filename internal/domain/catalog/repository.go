package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	// FindByCategory filters by category and, when non-empty, subcategory
	FindByCategory(ctx context.Context, category, subcategory string) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CategoryRepository defines the persistence operations for categories
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]Category, error)
	// FindSubcategories lists the distinct subcategories under a category
	FindSubcategories(ctx context.Context, category string) ([]string, error)
	Save(ctx context.Context, category *Category) error
}

// SettingRepository is a key/value store for shop settings
// (hero media URLs and similar operator-tunable values)
type SettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Well-known setting keys
const (
	SettingLogoURL      = "logo_url"
	SettingHeroVideoURL = "hero_video_url"
)
