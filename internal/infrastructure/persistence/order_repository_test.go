package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

func placedOrder(t *testing.T, fullName string) *order.Order {
	t.Helper()
	form := order.CheckoutForm{
		FullName: fullName,
		Phone:    "+79991234567",
		Address:  "Москва, ул. Ленина 1",
	}
	items := []order.Item{
		{ProductID: uuid.New(), Title: "Hoodie", Size: "M", Quantity: 2, UnitPrice: decimal.NewFromInt(4990)},
	}
	o, err := order.New(0, "", form, items)
	require.NoError(t, err)
	return o
}

func TestGormOrderRepository_SaveAndFindByID(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormOrderRepository(db.DB)
	ctx := context.Background()

	o := placedOrder(t, "Иван Иванов")
	require.NoError(t, repo.Save(ctx, o))

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Иван Иванов", found.FullName)
	assert.True(t, found.TotalPrice.Equal(decimal.NewFromInt(9980)))
	require.Len(t, found.Items, 1)
	assert.Equal(t, o.ID, found.Items[0].OrderID)
	assert.Equal(t, int64(2), found.Items[0].Quantity)
}

func TestGormOrderRepository_FindByID_NotFound(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormOrderRepository(db.DB)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOrderRepository_FindRecent(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormOrderRepository(db.DB)
	ctx := context.Background()

	older := placedOrder(t, "First")
	older.CreatedAt = time.Now().Add(-time.Hour)
	newer := placedOrder(t, "Second")
	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	orders, err := repo.FindRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Second", orders[0].FullName)
	require.Len(t, orders[0].Items, 1)
}
