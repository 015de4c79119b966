// Package catalogsource provides the HTTP client the mini-app session
// uses to pull shop configuration, categories and products from the
// storefront backend.
package catalogsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/application/storefront"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

const (
	// maxResponseSize limits the response body size to prevent memory exhaustion
	maxResponseSize = 10 * 1024 * 1024 // 10MB
	defaultTimeout  = 10 * time.Second
)

// HTTPSource implements CatalogSource against the storefront HTTP API
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPSource creates a catalog source for the given base URL
func NewHTTPSource(baseURL string, logger *zap.Logger) *HTTPSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPSource{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// wire formats

type configDTO struct {
	Title    string `json:"title"`
	LogoURL  string `json:"logo_url"`
	VideoURL string `json:"video_url"`
}

type categoryDTO struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

type productDTO struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Gallery     string          `json:"gallery"`
	Description string          `json:"description"`
	SizesText   string          `json:"sizes_text"`
}

// Config fetches the shop configuration
func (s *HTTPSource) Config(ctx context.Context) (catalog.ShopConfig, error) {
	var dto configDTO
	if err := s.getJSON(ctx, "/api/config", nil, &dto); err != nil {
		return catalog.ShopConfig{}, err
	}
	return catalog.NewShopConfig(dto.Title, dto.LogoURL, dto.VideoURL), nil
}

// Categories fetches the category tiles
func (s *HTTPSource) Categories(ctx context.Context) ([]catalog.Category, error) {
	var dtos []categoryDTO
	if err := s.getJSON(ctx, "/api/categories", nil, &dtos); err != nil {
		return nil, err
	}

	categories := make([]catalog.Category, 0, len(dtos))
	for i, d := range dtos {
		if d.Title == "" {
			continue
		}
		categories = append(categories, catalog.Category{
			Title:     d.Title,
			ImageURL:  d.ImageURL,
			SortOrder: i,
		})
	}
	return categories, nil
}

// Products fetches the products of a category, optionally narrowed to a
// subcategory. Rows with a malformed id are skipped rather than failing
// the whole fetch.
func (s *HTTPSource) Products(ctx context.Context, category, subcategory string) ([]catalog.Product, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}
	if subcategory != "" {
		query.Set("subcategory", subcategory)
	}

	var dtos []productDTO
	if err := s.getJSON(ctx, "/api/products", query, &dtos); err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(dtos))
	for i, d := range dtos {
		id, err := uuid.Parse(d.ID)
		if err != nil {
			s.logger.Warn("skipping product with malformed id",
				zap.String("id", d.ID),
				zap.String("title", d.Title),
			)
			continue
		}
		p := catalog.Product{
			Title:       d.Title,
			Price:       d.Price,
			Category:    d.Category,
			Subcategory: d.Subcategory,
			ImageURL:    d.ImageURL,
			Gallery:     d.Gallery,
			SizesText:   d.SizesText,
			Description: d.Description,
			SortOrder:   i,
		}
		p.ID = id
		products = append(products, p)
	}
	return products, nil
}

// getJSON performs a GET request and decodes the JSON response into out.
// Transport, status and decode failures all surface as ErrFetchFailed so
// callers can treat the remote end as a single unreliable dependency.
func (s *HTTPSource) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	reqURL := s.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", shared.ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
	}
	return nil
}

// Ensure HTTPSource implements CatalogSource
var _ storefront.CatalogSource = (*HTTPSource)(nil)
