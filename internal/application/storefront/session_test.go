package storefront

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/catalog"
)

// stubSource is a controllable CatalogSource for session tests
type stubSource struct {
	configFn     func(ctx context.Context) (catalog.ShopConfig, error)
	categoriesFn func(ctx context.Context) ([]catalog.Category, error)
	productsFn   func(ctx context.Context, category, subcategory string) ([]catalog.Product, error)
}

func (s *stubSource) Config(ctx context.Context) (catalog.ShopConfig, error) {
	if s.configFn == nil {
		return catalog.ShopConfig{}, nil
	}
	return s.configFn(ctx)
}

func (s *stubSource) Categories(ctx context.Context) ([]catalog.Category, error) {
	if s.categoriesFn == nil {
		return nil, nil
	}
	return s.categoriesFn(ctx)
}

func (s *stubSource) Products(ctx context.Context, category, subcategory string) ([]catalog.Product, error) {
	return s.productsFn(ctx, category, subcategory)
}

func newProduct(t *testing.T, title, category string, price int64) catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(title, category, decimal.NewFromInt(price))
	require.NoError(t, err)
	return *p
}

func titles(products []catalog.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Title)
	}
	return out
}

func TestOpenCategoryRendersFetchedProducts(t *testing.T) {
	shoes := []catalog.Product{
		newProduct(t, "Runner", "Shoes", 100),
		newProduct(t, "Boot", "Shoes", 50),
	}
	source := &stubSource{
		productsFn: func(ctx context.Context, category, subcategory string) ([]catalog.Product, error) {
			assert.Equal(t, "Shoes", category)
			return shoes, nil
		},
	}
	s := NewSession(source, nil, nil)

	require.NoError(t, s.OpenCategory(context.Background(), "Shoes", ""))
	assert.Equal(t, "Shoes", s.SelectedCategory())
	assert.Equal(t, []string{"Runner", "Boot"}, titles(s.VisibleProducts()))
}

func TestOpenCategoryFetchFailureRendersEmpty(t *testing.T) {
	source := &stubSource{
		productsFn: func(ctx context.Context, category, subcategory string) ([]catalog.Product, error) {
			return nil, errors.New("network down")
		},
	}
	s := NewSession(source, nil, nil)

	// failure is absorbed, never raised
	require.NoError(t, s.OpenCategory(context.Background(), "Shoes", ""))
	assert.Empty(t, s.VisibleProducts())
}

func TestStaleFetchIsDiscarded(t *testing.T) {
	listA := []catalog.Product{newProduct(t, "FromA", "A", 1)}
	listB := []catalog.Product{newProduct(t, "FromB", "B", 2)}

	aStarted := make(chan struct{})
	aRelease := make(chan struct{})
	source := &stubSource{
		productsFn: func(ctx context.Context, category, subcategory string) ([]catalog.Product, error) {
			if category == "A" {
				close(aStarted)
				<-aRelease
				return listA, nil
			}
			return listB, nil
		},
	}
	s := NewSession(source, nil, nil)

	aDone := make(chan struct{})
	go func() {
		defer close(aDone)
		_ = s.OpenCategory(context.Background(), "A", "")
	}()

	// wait until A's fetch is in flight, then request B, which resolves first
	<-aStarted
	require.NoError(t, s.OpenCategory(context.Background(), "B", ""))
	assert.Equal(t, []string{"FromB"}, titles(s.VisibleProducts()))

	// A resolves late, its result must be discarded
	close(aRelease)
	select {
	case <-aDone:
	case <-time.After(2 * time.Second):
		t.Fatal("stale fetch did not complete")
	}
	assert.Equal(t, []string{"FromB"}, titles(s.VisibleProducts()))
	assert.Equal(t, "B", s.SelectedCategory())
}

func TestVisibleProductsFilterAndSort(t *testing.T) {
	products := []catalog.Product{
		newProduct(t, "Expensive", "Shoes", 100),
		newProduct(t, "Cheap", "Shoes", 50),
		newProduct(t, "Shirt", "Apparel", 10),
	}
	source := &stubSource{
		productsFn: func(ctx context.Context, category, subcategory string) ([]catalog.Product, error) {
			return products, nil
		},
	}
	s := NewSession(source, nil, nil)
	require.NoError(t, s.OpenCategory(context.Background(), "", ""))

	s.SetCategory("Shoes")
	s.SetSort(SortPriceAsc)
	assert.Equal(t, []string{"Cheap", "Expensive"}, titles(s.VisibleProducts()))

	s.SetSort(SortPriceDesc)
	assert.Equal(t, []string{"Expensive", "Cheap"}, titles(s.VisibleProducts()))

	// no filter, no sort preserves source order
	s.SetCategory("")
	s.SetSort(SortNone)
	assert.Equal(t, []string{"Expensive", "Cheap", "Shirt"}, titles(s.VisibleProducts()))
}

func TestSortSymmetryWithoutTies(t *testing.T) {
	products := []catalog.Product{
		newProduct(t, "C", "X", 30),
		newProduct(t, "A", "X", 10),
		newProduct(t, "B", "X", 20),
	}
	source := &stubSource{
		productsFn: func(ctx context.Context, category, subcategory string) ([]catalog.Product, error) {
			return products, nil
		},
	}
	s := NewSession(source, nil, nil)
	require.NoError(t, s.OpenCategory(context.Background(), "", ""))

	s.SetSort(SortPriceAsc)
	asc := titles(s.VisibleProducts())

	s.SetSort(SortPriceDesc)
	desc := titles(s.VisibleProducts())
	for i, j := 0, len(desc)-1; i < j; i, j = i+1, j-1 {
		desc[i], desc[j] = desc[j], desc[i]
	}
	assert.Equal(t, asc, desc)
}

func TestSortStableOnEqualPrices(t *testing.T) {
	products := []catalog.Product{
		newProduct(t, "First", "X", 10),
		newProduct(t, "Second", "X", 10),
		newProduct(t, "Third", "X", 5),
	}
	source := &stubSource{
		productsFn: func(ctx context.Context, category, subcategory string) ([]catalog.Product, error) {
			return products, nil
		},
	}
	s := NewSession(source, nil, nil)
	require.NoError(t, s.OpenCategory(context.Background(), "", ""))

	s.SetSort(SortPriceAsc)
	assert.Equal(t, []string{"Third", "First", "Second"}, titles(s.VisibleProducts()))
}

func TestFavoritesTab(t *testing.T) {
	a := newProduct(t, "A", "X", 10)
	b := newProduct(t, "B", "X", 20)
	source := &stubSource{
		productsFn: func(ctx context.Context, category, subcategory string) ([]catalog.Product, error) {
			return []catalog.Product{a, b}, nil
		},
	}
	s := NewSession(source, nil, nil)
	require.NoError(t, s.OpenCategory(context.Background(), "", ""))

	s.AddFavorite(a)
	s.AddFavorite(a) // idempotent
	assert.True(t, s.IsFavorite(a.ID))

	s.SetTab(TabFavorites)
	assert.Equal(t, []string{"A"}, titles(s.VisibleProducts()))

	s.ToggleFavorite(a)
	assert.False(t, s.IsFavorite(a.ID))
	assert.Empty(t, s.VisibleProducts())

	s.SetTab(TabCatalog)
	assert.Equal(t, []string{"A", "B"}, titles(s.VisibleProducts()))
}

func TestDispatchCartCommands(t *testing.T) {
	p := newProduct(t, "Hoodie", "Apparel", 100)
	s := NewSession(&stubSource{}, nil, nil)
	ctx := context.Background()

	require.NoError(t, s.Dispatch(ctx, AddToCart{Product: p, Size: "M"}))
	require.NoError(t, s.Dispatch(ctx, AddToCart{Product: p, Size: "M"}))
	require.NoError(t, s.Dispatch(ctx, AddToCart{Product: p, Size: "L"}))

	entries := s.CartEntries()
	require.Len(t, entries, 2)
	assert.EqualValues(t, 3, s.BadgeCount())

	require.NoError(t, s.Dispatch(ctx, DecrementItem{Index: 1}))
	assert.EqualValues(t, 1, s.CartEntries()[1].Quantity)

	require.NoError(t, s.Dispatch(ctx, RemoveItem{Index: 0}))
	assert.Equal(t, 1, len(s.CartEntries()))

	assert.Error(t, s.Dispatch(ctx, IncrementItem{Index: 9}))
}
