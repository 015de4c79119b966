package order

import (
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// Event types for order aggregates
const (
	EventOrderPlaced = "order.placed"
)

// OrderPlacedEvent is published when an order is accepted by intake
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	FullName   string          `json:"full_name"`
	TotalPrice decimal.Decimal `json:"total_price"`
	ItemCount  int             `json:"item_count"`
}

// NewOrderPlacedEvent creates an OrderPlacedEvent for the given order
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOrderPlaced, "Order", o.ID),
		FullName:        o.FullName,
		TotalPrice:      o.TotalPrice,
		ItemCount:       len(o.Items),
	}
}
