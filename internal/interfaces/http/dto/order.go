package dto

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/order"
)

// OrderItemRequest is one cart line in an order submission.
// Prices are deliberately absent; the server reprices from its catalog.
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int64  `json:"qty"`
}

// OrderRequest is the order submission body
type OrderRequest struct {
	FullName string             `json:"full_name"`
	Phone    string             `json:"phone"`
	Address  string             `json:"address"`
	Comment  string             `json:"comment"`
	Telegram string             `json:"telegram"`
	Items    []OrderItemRequest `json:"items"`
}

// ToPayload converts the request into a domain payload.
// Items with a malformed product id are dropped, mirroring how the
// intake service drops unknown products.
func (r OrderRequest) ToPayload() order.Payload {
	items := make([]order.PayloadItem, 0, len(r.Items))
	for _, it := range r.Items {
		id, err := uuid.Parse(it.ProductID)
		if err != nil {
			continue
		}
		items = append(items, order.PayloadItem{
			ProductID: id,
			Size:      it.Size,
			Quantity:  it.Quantity,
		})
	}
	return order.Payload{
		FullName: r.FullName,
		Phone:    r.Phone,
		Address:  r.Address,
		Comment:  r.Comment,
		Telegram: r.Telegram,
		Items:    items,
	}
}

// OrderResponse acknowledges an accepted order
type OrderResponse struct {
	OK      bool   `json:"ok"`
	OrderID string `json:"order_id"`
}
