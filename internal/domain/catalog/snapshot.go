package catalog

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Snapshot is one fetch result of the catalog. Product ids are unique
// within a snapshot; a duplicate id means the source is corrupt.
type Snapshot struct {
	products []Product
}

// NewSnapshot validates and wraps a fetched product list
func NewSnapshot(products []Product) (*Snapshot, error) {
	seen := make(map[uuid.UUID]struct{}, len(products))
	for i := range products {
		if _, dup := seen[products[i].ID]; dup {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT_ID", "Duplicate product id in catalog snapshot")
		}
		seen[products[i].ID] = struct{}{}
	}
	return &Snapshot{products: products}, nil
}

// Products returns a copy of the snapshot's product list
func (s *Snapshot) Products() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// Len returns the number of products in the snapshot
func (s *Snapshot) Len() int {
	return len(s.products)
}
