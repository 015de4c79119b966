package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/catalog"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindAll returns every category in display order
func (r *GormCategoryRepository) FindAll(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := r.db.WithContext(ctx).
		Order("sort_order ASC, title ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindSubcategories lists the distinct non-empty subcategories under a category
func (r *GormCategoryRepository) FindSubcategories(ctx context.Context, category string) ([]string, error) {
	var subcategories []string
	if err := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Distinct("subcategory").
		Where("category = ? AND subcategory <> ''", category).
		Order("subcategory ASC").
		Pluck("subcategory", &subcategories).Error; err != nil {
		return nil, err
	}
	return subcategories, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
