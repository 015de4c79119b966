package catalog

import (
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
)

// Category represents a product category shown as a navigation tile
type Category struct {
	shared.AggregateRoot
	Title     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	ImageURL  string `gorm:"type:text"`
	SortOrder int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(title string) (*Category, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Category title cannot be empty")
	}
	if len(title) > 100 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Category title cannot exceed 100 characters")
	}
	return &Category{
		AggregateRoot: shared.NewAggregateRoot(),
		Title:         title,
	}, nil
}
