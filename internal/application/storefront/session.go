package storefront

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Tab selects which product set the grid shows
type Tab string

const (
	TabCatalog   Tab = "catalog"
	TabFavorites Tab = "favorites"
)

// SortMode orders the visible product list
type SortMode string

const (
	SortNone      SortMode = ""
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
)

// Session owns all mutable storefront state for one user session:
// the selected tab/category/sort, the favorites set, the fetched
// product grid and the cart. State is exposed only through accessors;
// mutation happens through the explicit methods or Dispatch.
type Session struct {
	id     uuid.UUID
	source CatalogSource
	bus    shared.EventPublisher
	logger *zap.Logger

	// fetchSeq is the monotonically increasing request token used to
	// discard stale product fetches (see OpenCategory).
	fetchSeq atomic.Uint64

	mu        sync.Mutex
	tab       Tab
	category  string // filter chip, "" means all
	sortMode  SortMode
	selected  string // category opened into the grid, "" means home
	products  []catalog.Product
	favOrder  []uuid.UUID
	favorites map[uuid.UUID]catalog.Product
	cart      *cart.Cart
}

// NewSession creates a session with default view state.
// bus may be nil when no render notifications are needed.
func NewSession(source CatalogSource, bus shared.EventPublisher, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		id:        uuid.New(),
		source:    source,
		bus:       bus,
		logger:    logger,
		tab:       TabCatalog,
		sortMode:  SortNone,
		favorites: make(map[uuid.UUID]catalog.Product),
		cart:      cart.New(),
	}
}

// ID returns the session identifier
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Dispatch applies a UI command to the session
func (s *Session) Dispatch(ctx context.Context, cmd Command) error {
	switch c := cmd.(type) {
	case SelectTab:
		s.SetTab(c.Tab)
	case SelectCategory:
		s.SetCategory(c.Category)
	case OpenCategory:
		return s.OpenCategory(ctx, c.Category, c.Subcategory)
	case SelectSort:
		s.SetSort(c.Mode)
	case ToggleFavorite:
		s.ToggleFavorite(c.Product)
	case AddToCart:
		s.AddToCart(c.Product, c.Size)
	case IncrementItem:
		_, err := s.IncrementItem(c.Index)
		return err
	case DecrementItem:
		_, err := s.DecrementItem(c.Index)
		return err
	case RemoveItem:
		return s.RemoveItem(c.Index)
	default:
		return shared.NewDomainError("UNKNOWN_COMMAND", "Unknown session command")
	}
	return nil
}

// SetTab switches the active tab. No network call: both tabs operate
// on already-fetched data.
func (s *Session) SetTab(tab Tab) {
	s.mu.Lock()
	s.tab = tab
	s.mu.Unlock()
	s.notify(CauseTab)
}

// SetCategory applies a category filter chip. Empty string shows all.
func (s *Session) SetCategory(category string) {
	s.mu.Lock()
	s.category = category
	s.mu.Unlock()
	s.notify(CauseCategory)
}

// SetSort changes the sort mode
func (s *Session) SetSort(mode SortMode) {
	s.mu.Lock()
	s.sortMode = mode
	s.mu.Unlock()
	s.notify(CauseSort)
}

// OpenCategory navigates into a category grid, re-querying the source.
// Fetches can interleave: a response is applied only if no newer fetch
// has been requested since, so a late response for an abandoned
// category is discarded and the grid keeps the latest result.
// A failed fetch renders an empty grid and returns nil.
func (s *Session) OpenCategory(ctx context.Context, category, subcategory string) error {
	seq := s.fetchSeq.Add(1)

	products, err := s.source.Products(ctx, category, subcategory)
	if err != nil {
		s.logger.Warn("product fetch failed, rendering empty grid",
			zap.String("category", category),
			zap.Error(err),
		)
		products = nil
	} else if _, err := catalog.NewSnapshot(products); err != nil {
		s.logger.Warn("catalog snapshot rejected",
			zap.String("category", category),
			zap.Error(err),
		)
		products = nil
	}

	s.mu.Lock()
	if seq != s.fetchSeq.Load() {
		// a newer fetch was requested while this one was in flight
		s.mu.Unlock()
		s.logger.Debug("discarding stale product fetch",
			zap.String("category", category),
			zap.Uint64("seq", seq),
		)
		return nil
	}
	s.selected = category
	s.products = products
	s.mu.Unlock()

	s.notify(CauseProducts)
	return nil
}

// SelectedCategory returns the category currently opened into the grid
func (s *Session) SelectedCategory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// ActiveTab returns the current tab
func (s *Session) ActiveTab() Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

// VisibleProducts derives the displayed product list: tab selection,
// then category filter, then stable price sort. Ties keep their prior
// relative order.
func (s *Session) VisibleProducts() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	var base []catalog.Product
	if s.tab == TabFavorites {
		base = make([]catalog.Product, 0, len(s.favOrder))
		for _, id := range s.favOrder {
			base = append(base, s.favorites[id])
		}
	} else {
		base = append([]catalog.Product(nil), s.products...)
	}

	list := base
	if s.category != "" {
		list = list[:0:0]
		for _, p := range base {
			if p.Category == s.category {
				list = append(list, p)
			}
		}
	}

	switch s.sortMode {
	case SortPriceAsc:
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Price.LessThan(list[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(list, func(i, j int) bool {
			return list[j].Price.LessThan(list[i].Price)
		})
	}
	return list
}

// AddFavorite marks a product as favorite. Idempotent: adding an
// already-favorited product is a no-op.
func (s *Session) AddFavorite(p catalog.Product) {
	s.mu.Lock()
	if _, ok := s.favorites[p.ID]; ok {
		s.mu.Unlock()
		return
	}
	s.favorites[p.ID] = p
	s.favOrder = append(s.favOrder, p.ID)
	s.mu.Unlock()
	s.notify(CauseFavorites)
}

// ToggleFavorite flips favorites membership for a product
func (s *Session) ToggleFavorite(p catalog.Product) {
	s.mu.Lock()
	if _, ok := s.favorites[p.ID]; ok {
		delete(s.favorites, p.ID)
		for i, id := range s.favOrder {
			if id == p.ID {
				s.favOrder = append(s.favOrder[:i], s.favOrder[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	} else {
		s.favorites[p.ID] = p
		s.favOrder = append(s.favOrder, p.ID)
		s.mu.Unlock()
	}
	s.notify(CauseFavorites)
}

// IsFavorite reports favorites membership by product id
func (s *Session) IsFavorite(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.favorites[id]
	return ok
}

// AddToCart puts a product with the chosen size into the cart
func (s *Session) AddToCart(p catalog.Product, size string) cart.Entry {
	s.mu.Lock()
	entry := s.cart.Add(p, size)
	s.mu.Unlock()
	s.notify(CauseCart)
	return entry
}

// IncrementItem raises the quantity of the cart entry at index
func (s *Session) IncrementItem(index int) (cart.Entry, error) {
	s.mu.Lock()
	entry, err := s.cart.Increment(index)
	s.mu.Unlock()
	if err != nil {
		return cart.Entry{}, err
	}
	s.notify(CauseCart)
	return entry, nil
}

// DecrementItem lowers the quantity of the cart entry at index,
// flooring at one
func (s *Session) DecrementItem(index int) (cart.Entry, error) {
	s.mu.Lock()
	entry, err := s.cart.Decrement(index)
	s.mu.Unlock()
	if err != nil {
		return cart.Entry{}, err
	}
	s.notify(CauseCart)
	return entry, nil
}

// RemoveItem deletes the cart entry at index
func (s *Session) RemoveItem(index int) error {
	s.mu.Lock()
	err := s.cart.Remove(index)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(CauseCart)
	return nil
}

// Cart returns the session's cart for checkout to read
func (s *Session) Cart() *cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// CartEntries returns the cart lines in display order
func (s *Session) CartEntries() []cart.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Entries()
}

// CartTotal returns the cart total
func (s *Session) CartTotal() valueobject.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// BadgeCount returns the cart badge number
func (s *Session) BadgeCount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.BadgeCount()
}

// ClearCart drops all cart entries, used after a completed checkout
func (s *Session) ClearCart() {
	s.mu.Lock()
	s.cart.Clear()
	s.mu.Unlock()
	s.notify(CauseCart)
}

func (s *Session) notify(cause string) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(context.Background(), NewStateChangedEvent(s.id, cause)); err != nil {
		s.logger.Warn("state change notification failed", zap.Error(err))
	}
}
