package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Order is the server-side record of a submitted order.
// Line prices and the total are set from the server catalog at intake
// time, not taken from the client.
type Order struct {
	shared.AggregateRoot
	UserID     int64           `gorm:"not null;default:0;index"` // telegram user id, 0 for web submissions
	Username   string          `gorm:"type:varchar(100)"`
	FullName   string          `gorm:"type:varchar(200);not null"`
	Phone      string          `gorm:"type:varchar(20);not null"`
	Address    string          `gorm:"type:text"`
	Comment    string          `gorm:"type:text"`
	Telegram   string          `gorm:"type:varchar(100)"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Items      []Item          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// Item is one priced order line
type Item struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Title     string          `gorm:"type:varchar(200);not null"`
	Size      string          `gorm:"type:varchar(50)"`
	Quantity  int64           `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// New creates an order from customer fields and priced items.
// Form-level validation is the client's job; intake only refuses
// orders with no resolvable items.
func New(userID int64, username string, form CheckoutForm, items []Item) (*Order, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one item")
	}

	trimmed := form.Trimmed()
	o := &Order{
		AggregateRoot: shared.NewAggregateRoot(),
		UserID:        userID,
		Username:      username,
		FullName:      trimmed.FullName,
		Phone:         trimmed.Phone,
		Address:       trimmed.Address,
		Comment:       trimmed.Comment,
		Telegram:      trimmed.Telegram,
	}

	total := decimal.Zero
	for i := range items {
		items[i].OrderID = o.ID
		total = total.Add(items[i].UnitPrice.Mul(decimal.NewFromInt(items[i].Quantity)))
	}
	o.Items = items
	o.TotalPrice = total

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return o, nil
}

// TotalMoney returns the repriced total as a Money value object
func (o *Order) TotalMoney() valueobject.Money {
	return valueobject.NewMoney(o.TotalPrice)
}
