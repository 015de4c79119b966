package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// CatalogHandler serves the read side of the storefront API
type CatalogHandler struct {
	BaseHandler
	storeTitle string
	managerURL string
	products   catalog.ProductRepository
	categories catalog.CategoryRepository
	settings   catalog.SettingRepository
	logger     *zap.Logger
}

// NewCatalogHandler creates a CatalogHandler
func NewCatalogHandler(
	storeTitle, managerURL string,
	products catalog.ProductRepository,
	categories catalog.CategoryRepository,
	settings catalog.SettingRepository,
	logger *zap.Logger,
) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{
		storeTitle: storeTitle,
		managerURL: managerURL,
		products:   products,
		categories: categories,
		settings:   settings,
		logger:     logger,
	}
}

// GetConfig serves the shop configuration with the hero media derived
// from the operator settings. A missing setting is just empty, never an
// error.
func (h *CatalogHandler) GetConfig(c *gin.Context) {
	logoURL := h.setting(c, catalog.SettingLogoURL)
	videoURL := h.setting(c, catalog.SettingHeroVideoURL)

	cfg := catalog.NewShopConfig(h.storeTitle, logoURL, videoURL)
	resp := dto.FromShopConfig(cfg)
	resp.ManagerURL = h.managerURL
	h.OK(c, resp)
}

// GetCategories serves the category tiles
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.categories.FindAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.FromCategories(categories))
}

// GetSubcategories serves the distinct subcategories of a category
func (h *CatalogHandler) GetSubcategories(c *gin.Context) {
	category := c.Query("category")
	subcategories, err := h.categories.FindSubcategories(c.Request.Context(), category)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, subcategories)
}

// GetProducts serves the products of a category, or the whole catalog
// when no category is given
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	category := c.Query("category")
	subcategory := c.Query("subcategory")

	var (
		products []catalog.Product
		err      error
	)
	if category == "" {
		products, err = h.products.FindAll(c.Request.Context())
	} else {
		products, err = h.products.FindByCategory(c.Request.Context(), category, subcategory)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, dto.FromProducts(products))
}

func (h *CatalogHandler) setting(c *gin.Context, key string) string {
	value, err := h.settings.Get(c.Request.Context(), key)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			h.logger.Warn("setting lookup failed", zap.String("key", key), zap.Error(err))
		}
		return ""
	}
	return value
}
