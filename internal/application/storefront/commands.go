package storefront

import "github.com/storefront/backend/internal/domain/catalog"

// Command is a discrete UI event dispatched into the session.
// Using explicit commands keeps the state machine testable without a
// rendering surface.
type Command interface {
	isCommand()
}

// SelectTab switches between the catalog and favorites views
type SelectTab struct {
	Tab Tab
}

// SelectCategory applies a category filter chip to the fetched list
type SelectCategory struct {
	Category string
}

// OpenCategory navigates into a category grid and re-queries the source
type OpenCategory struct {
	Category    string
	Subcategory string
}

// SelectSort changes the price sort mode
type SelectSort struct {
	Mode SortMode
}

// ToggleFavorite flips favorites membership for a product
type ToggleFavorite struct {
	Product catalog.Product
}

// AddToCart puts a product with a chosen size into the cart
type AddToCart struct {
	Product catalog.Product
	Size    string
}

// IncrementItem raises the quantity of the cart entry at Index
type IncrementItem struct {
	Index int
}

// DecrementItem lowers the quantity of the cart entry at Index
type DecrementItem struct {
	Index int
}

// RemoveItem deletes the cart entry at Index
type RemoveItem struct {
	Index int
}

func (SelectTab) isCommand()      {}
func (SelectCategory) isCommand() {}
func (OpenCategory) isCommand()   {}
func (SelectSort) isCommand()     {}
func (ToggleFavorite) isCommand() {}
func (AddToCart) isCommand()      {}
func (IncrementItem) isCommand()  {}
func (DecrementItem) isCommand()  {}
func (RemoveItem) isCommand()     {}
