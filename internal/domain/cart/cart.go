package cart

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Entry is one cart line. Key is the deduplication identity: the same
// product in the same size always lands on the same entry.
type Entry struct {
	Key       string
	ProductID uuid.UUID
	Title     string
	Price     valueobject.Money
	Size      string
	Quantity  int64
}

// EntryKey builds the composite dedup key for a product and size
func EntryKey(productID uuid.UUID, size string) string {
	return productID.String() + ":" + size
}

// Cart owns the ordered list of entries for one session.
// Insertion order is display order. Quantities never drop below one;
// removal is a distinct operation.
type Cart struct {
	entries []Entry
}

// New creates an empty cart
func New() *Cart {
	return &Cart{}
}

// Add puts a product into the cart. An existing entry with the same
// product and size is incremented instead of appended.
// Returns the resulting entry.
func (c *Cart) Add(product catalog.Product, size string) Entry {
	key := EntryKey(product.ID, size)
	for i := range c.entries {
		if c.entries[i].Key == key {
			c.entries[i].Quantity++
			return c.entries[i]
		}
	}
	entry := Entry{
		Key:       key,
		ProductID: product.ID,
		Title:     product.Title,
		Price:     product.PriceMoney(),
		Size:      size,
		Quantity:  1,
	}
	c.entries = append(c.entries, entry)
	return entry
}

// Increment raises the quantity of the entry at index by one
func (c *Cart) Increment(index int) (Entry, error) {
	if index < 0 || index >= len(c.entries) {
		return Entry{}, shared.ErrIndexOutOfRange
	}
	c.entries[index].Quantity++
	return c.entries[index], nil
}

// Decrement lowers the quantity of the entry at index by one,
// flooring at one. It never removes the entry.
func (c *Cart) Decrement(index int) (Entry, error) {
	if index < 0 || index >= len(c.entries) {
		return Entry{}, shared.ErrIndexOutOfRange
	}
	if c.entries[index].Quantity > 1 {
		c.entries[index].Quantity--
	}
	return c.entries[index], nil
}

// Remove deletes the entry at index. Indices of later entries shift
// down, so callers must re-read entries after a removal.
func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.entries) {
		return shared.ErrIndexOutOfRange
	}
	c.entries = append(c.entries[:index], c.entries[index+1:]...)
	return nil
}

// Entries returns a copy of the cart lines in display order
func (c *Cart) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of distinct entries
func (c *Cart) Len() int {
	return len(c.entries)
}

// IsEmpty reports whether the cart has no entries
func (c *Cart) IsEmpty() bool {
	return len(c.entries) == 0
}

// Total returns the sum of price times quantity over all entries
func (c *Cart) Total() valueobject.Money {
	total := valueobject.Zero()
	for i := range c.entries {
		total = total.Add(c.entries[i].Price.MultiplyByInt(c.entries[i].Quantity))
	}
	return total
}

// BadgeCount returns the sum of quantities, the number shown on the
// cart button badge
func (c *Cart) BadgeCount() int64 {
	var n int64
	for i := range c.entries {
		n += c.entries[i].Quantity
	}
	return n
}

// Clear drops all entries
func (c *Cart) Clear() {
	c.entries = nil
}
