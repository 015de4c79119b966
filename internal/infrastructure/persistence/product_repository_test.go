package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewInMemoryDatabase()
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func mustProduct(t *testing.T, title, category string, price int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(title, category, decimal.NewFromInt(price))
	require.NoError(t, err)
	return p
}

func TestGormProductRepository_SaveAndFindByID(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormProductRepository(db.DB)
	ctx := context.Background()

	p := mustProduct(t, "Oversize Hoodie", "Одежда", 4990)
	p.Subcategory = "Худи"
	require.NoError(t, repo.Save(ctx, p))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oversize Hoodie", found.Title)
	assert.Equal(t, "Худи", found.Subcategory)
	assert.True(t, found.Price.Equal(decimal.NewFromInt(4990)))
}

func TestGormProductRepository_FindByID_NotFound(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormProductRepository(db.DB)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_FindAll_OrdersBySortOrder(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormProductRepository(db.DB)
	ctx := context.Background()

	second := mustProduct(t, "B Tee", "Одежда", 1990)
	second.SortOrder = 2
	first := mustProduct(t, "A Tee", "Одежда", 1490)
	first.SortOrder = 1
	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, repo.Save(ctx, first))

	products, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "A Tee", products[0].Title)
	assert.Equal(t, "B Tee", products[1].Title)
}

func TestGormProductRepository_FindByCategory(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormProductRepository(db.DB)
	ctx := context.Background()

	hoodie := mustProduct(t, "Hoodie", "Одежда", 4990)
	hoodie.Subcategory = "Худи"
	tee := mustProduct(t, "Tee", "Одежда", 1990)
	tee.Subcategory = "Футболки"
	sneaker := mustProduct(t, "Runner", "Обувь", 7990)
	for _, p := range []*catalog.Product{hoodie, tee, sneaker} {
		require.NoError(t, repo.Save(ctx, p))
	}

	t.Run("category only", func(t *testing.T) {
		products, err := repo.FindByCategory(ctx, "Одежда", "")
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("category and subcategory", func(t *testing.T) {
		products, err := repo.FindByCategory(ctx, "Одежда", "Худи")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Hoodie", products[0].Title)
	})

	t.Run("unknown category is empty", func(t *testing.T) {
		products, err := repo.FindByCategory(ctx, "Аксессуары", "")
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestGormProductRepository_Delete(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormProductRepository(db.DB)
	ctx := context.Background()

	p := mustProduct(t, "Hoodie", "Одежда", 4990)
	require.NoError(t, repo.Save(ctx, p))

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err := repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, p.ID), shared.ErrNotFound)
}
