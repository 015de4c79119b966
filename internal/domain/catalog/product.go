package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Default size sets used when a product carries no explicit size list.
var (
	ApparelSizes  = []string{"XS", "S", "M", "L", "XL", "XXL"}
	FootwearSizes = []string{"36", "37", "38", "39", "40", "41", "42", "43", "44", "45"}
)

// Product represents a single item in the shop catalog.
// It is the aggregate root for catalog operations and is value-copied
// into sessions and carts; mutating a copy never affects the catalog.
type Product struct {
	shared.AggregateRoot
	Title       string          `gorm:"type:varchar(200);not null"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Category    string          `gorm:"type:varchar(100);index"`
	Subcategory string          `gorm:"type:varchar(100);index"`
	ImageURL    string          `gorm:"type:text"`
	Gallery     string          `gorm:"type:text"` // comma-separated extra image URLs
	SizesText   string          `gorm:"type:varchar(200)"`
	Description string          `gorm:"type:text"`
	SortOrder   int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(title, category string, price decimal.Decimal) (*Product, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &Product{
		AggregateRoot: shared.NewAggregateRoot(),
		Title:         title,
		Category:      category,
		Price:         price,
	}, nil
}

// PriceMoney returns the price as a Money value object
func (p *Product) PriceMoney() valueobject.Money {
	return valueobject.NewMoney(p.Price)
}

// SizeSet returns the selectable sizes for the product.
// An explicit comma-separated SizesText wins; otherwise the set is derived
// from the category (footwear gets shoe sizes, everything else apparel sizes).
func (p *Product) SizeSet() []string {
	if strings.TrimSpace(p.SizesText) != "" {
		var sizes []string
		for _, s := range strings.Split(p.SizesText, ",") {
			if s = strings.TrimSpace(s); s != "" {
				sizes = append(sizes, s)
			}
		}
		if len(sizes) > 0 {
			return sizes
		}
	}
	if p.IsFootwear() {
		return FootwearSizes
	}
	return ApparelSizes
}

// IsFootwear reports whether the product category names footwear.
// The catalog is bilingual, so both the Russian and English stems are checked.
func (p *Product) IsFootwear() bool {
	c := strings.ToLower(p.Category)
	return strings.Contains(c, "обув") || strings.Contains(c, "shoe") || strings.Contains(c, "sneaker")
}

// GalleryURLs returns the extra image URLs, raw and in listed order
func (p *Product) GalleryURLs() []string {
	if strings.TrimSpace(p.Gallery) == "" {
		return nil
	}
	var urls []string
	for _, u := range strings.Split(p.Gallery, ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Product title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Product title cannot exceed 200 characters")
	}
	return nil
}
