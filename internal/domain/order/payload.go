package order

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/cart"
)

// PayloadItem is one order line as sent over the wire.
// Price is deliberately absent: the server is the price source of
// record and reprices every line from its own catalog, so a tampered
// client cannot influence the total.
type PayloadItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Size      string    `json:"size"`
	Quantity  int64     `json:"qty"`
}

// Payload is the canonical order submission shape. The same payload is
// used for both dispatch channels (host-native send and backend POST).
type Payload struct {
	FullName string        `json:"full_name"`
	Phone    string        `json:"phone"`
	Address  string        `json:"address"`
	Comment  string        `json:"comment"`
	Telegram string        `json:"telegram"`
	Items    []PayloadItem `json:"items"`
}

// BuildPayload maps cart entries and a validated form into the wire
// payload. Pure function: neither the cart nor the form is mutated.
func BuildPayload(c *cart.Cart, form CheckoutForm) Payload {
	entries := c.Entries()
	items := make([]PayloadItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, PayloadItem{
			ProductID: e.ProductID,
			Size:      e.Size,
			Quantity:  e.Quantity,
		})
	}
	trimmed := form.Trimmed()
	return Payload{
		FullName: trimmed.FullName,
		Phone:    trimmed.Phone,
		Address:  trimmed.Address,
		Comment:  trimmed.Comment,
		Telegram: trimmed.Telegram,
		Items:    items,
	}
}
