// Package ordersink delivers finished checkout payloads: to the host
// messaging client (the Telegram web-app bridge), to the storefront
// backend over HTTP, and to the shop operators via the Bot API.
package ordersink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/application/storefront"
	"github.com/storefront/backend/internal/domain/order"
)

const postTimeout = 10 * time.Second

// NativeSender hands serialized payloads to the host messaging client.
// Implementations wrap whatever bridge the embedding client exposes.
type NativeSender interface {
	SendData(data []byte) error
}

// DualSink implements OrderSink with a native channel and a backend
// POST channel. Both deliveries are best-effort and independent.
type DualSink struct {
	native     NativeSender
	backendURL string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewDualSink creates a sink. native may be nil when no host bridge is
// available (plain web clients).
func NewDualSink(native NativeSender, backendURL string, logger *zap.Logger) *DualSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DualSink{
		native:     native,
		backendURL: backendURL,
		httpClient: &http.Client{Timeout: postTimeout},
		logger:     logger,
	}
}

// SendNative hands the payload to the host client. Failures are logged
// and absorbed; the native bridge gives no delivery guarantee anyway.
func (s *DualSink) SendNative(ctx context.Context, payload order.Payload) {
	if s.native == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Warn("native payload marshal failed", zap.Error(err))
		return
	}
	if err := s.native.SendData(data); err != nil {
		s.logger.Warn("native send failed", zap.Error(err))
	}
}

// PostOrder submits the payload to the backend order endpoint
func (s *DualSink) PostOrder(ctx context.Context, payload order.Payload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.backendURL+"/api/order", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post order: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("post order: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// Ensure DualSink implements OrderSink
var _ storefront.OrderSink = (*DualSink)(nil)
