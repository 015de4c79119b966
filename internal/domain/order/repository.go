package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence operations for orders
type Repository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindRecent(ctx context.Context, limit int) ([]Order, error)
}
