package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
)

func TestNewOrderReprices(t *testing.T) {
	items := []Item{
		{ProductID: uuid.New(), Title: "A", Quantity: 2, UnitPrice: decimal.NewFromInt(100)},
		{ProductID: uuid.New(), Title: "B", Quantity: 1, UnitPrice: decimal.NewFromInt(50)},
	}
	o, err := New(42, "buyer", CheckoutForm{FullName: "Иванов", Phone: "+79991234567"}, items)
	require.NoError(t, err)

	assert.True(t, o.TotalPrice.Equal(decimal.NewFromInt(250)))
	for _, it := range o.Items {
		assert.Equal(t, o.ID, it.OrderID)
	}

	events := o.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventOrderPlaced, events[0].EventType())
}

func TestNewOrderRejectsEmpty(t *testing.T) {
	_, err := New(0, "", CheckoutForm{FullName: "Иванов"}, nil)
	assert.Error(t, err)
}

func TestBuildPayloadOmitsPrice(t *testing.T) {
	p, err := catalog.NewProduct("Hoodie", "Одежда", decimal.NewFromInt(4990))
	require.NoError(t, err)

	c := cart.New()
	c.Add(*p, "M")
	c.Add(*p, "M")

	form := CheckoutForm{
		FullName: " Иванов Иван ",
		Phone:    "+79991234567",
		Address:  "Москва",
		Comment:  "размер L",
		Telegram: "@buyer",
	}
	payload := BuildPayload(c, form)

	assert.Equal(t, "Иванов Иван", payload.FullName)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, p.ID, payload.Items[0].ProductID)
	assert.Equal(t, "M", payload.Items[0].Size)
	assert.EqualValues(t, 2, payload.Items[0].Quantity)

	// building a payload must not consume the cart
	assert.Equal(t, 1, c.Len())
}
