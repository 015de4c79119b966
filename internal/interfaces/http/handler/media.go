package handler

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/application/storefront"
)

const (
	proxyTimeout     = 15 * time.Second
	maxProxiedBytes  = 25 * 1024 * 1024 // 25MB covers hero videos
	proxyCacheHeader = "public, max-age=31536000"
)

// MediaHandler proxies remote media through the backend. Hosts like
// Google Drive refuse hotlinking from the Telegram webview; the proxy
// fetches server-side and serves the bytes with long-lived caching.
type MediaHandler struct {
	BaseHandler
	resolver   storefront.MediaResolver
	httpClient *http.Client
	logger     *zap.Logger
}

// NewMediaHandler creates a MediaHandler
func NewMediaHandler(resolver storefront.MediaResolver, logger *zap.Logger) *MediaHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MediaHandler{
		resolver:   resolver,
		httpClient: &http.Client{Timeout: proxyTimeout},
		logger:     logger,
	}
}

// Proxy fetches the media behind ?u= and streams it back
func (h *MediaHandler) Proxy(c *gin.Context) {
	rawURL := c.Query("u")
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		c.String(http.StatusBadRequest, "bad url")
		return
	}

	target := h.resolver.Resolve(rawURL)

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, target, nil)
	if err != nil {
		c.String(http.StatusBadRequest, "bad url")
		return
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.logger.Warn("media proxy fetch failed", zap.String("url", target), zap.Error(err))
		c.String(http.StatusBadGateway, "proxy error")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.String(resp.StatusCode, "fetch error")
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Cache-Control", proxyCacheHeader)
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, io.LimitReader(resp.Body, maxProxiedBytes)); err != nil {
		h.logger.Warn("media proxy stream aborted", zap.String("url", target), zap.Error(err))
	}
}
