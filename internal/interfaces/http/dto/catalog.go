// Package dto defines the wire shapes of the storefront API. The
// mini-app consumes these directly, so field names are part of the
// public contract and must stay stable.
package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
)

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope for failed requests
type ErrorResponse struct {
	Error ErrorInfo `json:"error"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorInfo{Code: code, Message: message}}
}

// ConfigResponse is the shop configuration served to the mini-app
type ConfigResponse struct {
	Title    string `json:"title"`
	LogoURL  string `json:"logo_url"`
	VideoURL string `json:"video_url"`
	HeroURL  string `json:"hero_url"`
	HeroType string `json:"hero_type"`
	// ManagerURL is the deep link the "write to us" button opens
	ManagerURL string `json:"manager_url,omitempty"`
}

// FromShopConfig maps the domain config to its wire shape
func FromShopConfig(cfg catalog.ShopConfig) ConfigResponse {
	return ConfigResponse{
		Title:    cfg.Title,
		LogoURL:  cfg.LogoURL,
		VideoURL: cfg.VideoURL,
		HeroURL:  cfg.HeroURL,
		HeroType: cfg.HeroType,
	}
}

// CategoryResponse is one category tile
type CategoryResponse struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

// FromCategories maps categories to their wire shape
func FromCategories(categories []catalog.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{Title: c.Title, ImageURL: c.ImageURL})
	}
	return out
}

// ProductResponse is one catalog product.
// Only explicitly configured sizes are served, both as a list and as a
// comma-joined string; the client derives default size sets itself.
type ProductResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Gallery     string          `json:"gallery"`
	Description string          `json:"description"`
	Sizes       []string        `json:"sizes"`
	SizesText   string          `json:"sizes_text"`
}

// FromProduct maps a product to its wire shape
func FromProduct(p *catalog.Product) ProductResponse {
	var sizes []string
	for _, s := range strings.Split(p.SizesText, ",") {
		if s = strings.TrimSpace(s); s != "" {
			sizes = append(sizes, s)
		}
	}
	return ProductResponse{
		ID:          p.ID.String(),
		Title:       p.Title,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Gallery:     p.Gallery,
		Description: p.Description,
		Sizes:       sizes,
		SizesText:   strings.Join(sizes, ","),
	}
}

// FromProducts maps a product list to its wire shape
func FromProducts(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, FromProduct(&products[i]))
	}
	return out
}
