package order

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// AdminNotifier delivers a new-order notification to the shop operators
type AdminNotifier interface {
	NotifyOrder(ctx context.Context, o *order.Order) error
}

// OrderPlacedHandler handles OrderPlacedEvent and forwards the accepted
// order to the admin chats. Notification failures are the bus's problem:
// the order is already persisted when this handler runs.
type OrderPlacedHandler struct {
	orders   order.Repository
	notifier AdminNotifier
	logger   *zap.Logger
}

// NewOrderPlacedHandler creates a handler for order placed events
func NewOrderPlacedHandler(orders order.Repository, notifier AdminNotifier, logger *zap.Logger) *OrderPlacedHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderPlacedHandler{
		orders:   orders,
		notifier: notifier,
		logger:   logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderPlacedHandler) EventTypes() []string {
	return []string{order.EventOrderPlaced}
}

// Handle processes an OrderPlacedEvent
func (h *OrderPlacedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	placed, ok := event.(*order.OrderPlacedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", order.EventOrderPlaced),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			order.EventOrderPlaced, event.EventType())
	}

	o, err := h.orders.FindByID(ctx, placed.AggregateID())
	if err != nil {
		return fmt.Errorf("load order %s: %w", placed.AggregateID(), err)
	}

	if err := h.notifier.NotifyOrder(ctx, o); err != nil {
		h.logger.Warn("admin notification failed",
			zap.String("order_id", o.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

var _ shared.EventHandler = (*OrderPlacedHandler)(nil)
