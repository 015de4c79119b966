// Package router wires the storefront API routes onto a gin engine.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// Handlers groups the handlers the router mounts
type Handlers struct {
	Catalog *handler.CatalogHandler
	Order   *handler.OrderHandler
	Media   *handler.MediaHandler
}

// New builds a gin engine with the storefront routes and the standard
// middleware chain
func New(cfg *config.Config, h Handlers, zapLogger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(zapLogger),
		logger.Recovery(zapLogger),
		middleware.CORS(),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	{
		api.GET("/config", h.Catalog.GetConfig)
		api.GET("/categories", h.Catalog.GetCategories)
		api.GET("/subcategories", h.Catalog.GetSubcategories)
		api.GET("/products", h.Catalog.GetProducts)
		api.POST("/order", h.Order.Create)
	}

	engine.GET("/img", h.Media.Proxy)

	return engine
}
