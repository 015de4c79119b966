package order

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

func placedOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.New(0, "", order.CheckoutForm{FullName: "Иванов", Phone: "+79991234567"}, []order.Item{
		{Title: "Hoodie", Size: "M", Quantity: 1, UnitPrice: decimal.NewFromInt(4990)},
	})
	require.NoError(t, err)
	return o
}

func TestOrderPlacedHandlerNotifiesAdmins(t *testing.T) {
	orders := new(MockOrderRepository)
	notifier := new(MockNotifier)

	o := placedOrder(t)
	orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	notifier.On("NotifyOrder", mock.Anything, o).Return(nil)

	h := NewOrderPlacedHandler(orders, notifier, nil)
	err := h.Handle(context.Background(), order.NewOrderPlacedEvent(o))
	require.NoError(t, err)

	notifier.AssertCalled(t, "NotifyOrder", mock.Anything, o)
}

func TestOrderPlacedHandlerReportsNotifierFailure(t *testing.T) {
	orders := new(MockOrderRepository)
	notifier := new(MockNotifier)

	o := placedOrder(t)
	orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	notifier.On("NotifyOrder", mock.Anything, mock.Anything).Return(errors.New("telegram down"))

	h := NewOrderPlacedHandler(orders, notifier, nil)
	err := h.Handle(context.Background(), order.NewOrderPlacedEvent(o))
	assert.Error(t, err)
}

func TestOrderPlacedHandlerRejectsOtherEvents(t *testing.T) {
	h := NewOrderPlacedHandler(new(MockOrderRepository), new(MockNotifier), nil)

	other := &struct {
		shared.BaseDomainEvent
	}{shared.NewBaseDomainEvent("something.else", "Thing", placedOrder(t).ID)}

	err := h.Handle(context.Background(), other)
	assert.Error(t, err)
}

func TestOrderPlacedHandlerEventTypes(t *testing.T) {
	h := NewOrderPlacedHandler(new(MockOrderRepository), new(MockNotifier), nil)
	assert.Equal(t, []string{order.EventOrderPlaced}, h.EventTypes())
}
