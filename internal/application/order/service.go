package order

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"

	"github.com/google/uuid"
)

// IntakeService accepts order payloads from either dispatch channel
// (backend POST or the bot's web-app data), reprices every line from
// the server catalog and persists the result. The client-supplied
// payload never carries prices; whatever the client claims, the
// catalog price wins.
//
// Side effects like the admin notification hang off the published
// OrderPlacedEvent, not off the service itself.
type IntakeService struct {
	products catalog.ProductRepository
	orders   order.Repository
	bus      shared.EventPublisher
	logger   *zap.Logger
}

// NewIntakeService creates an IntakeService.
// bus may be nil.
func NewIntakeService(
	products catalog.ProductRepository,
	orders order.Repository,
	bus shared.EventPublisher,
	logger *zap.Logger,
) *IntakeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntakeService{
		products: products,
		orders:   orders,
		bus:      bus,
		logger:   logger,
	}
}

// Place accepts a payload submitted by an anonymous web client
func (s *IntakeService) Place(ctx context.Context, payload order.Payload) (uuid.UUID, error) {
	return s.place(ctx, 0, "", payload)
}

// PlaceForUser accepts a payload that arrived through the bot with a
// known telegram user attached
func (s *IntakeService) PlaceForUser(ctx context.Context, userID int64, username string, payload order.Payload) (uuid.UUID, error) {
	return s.place(ctx, userID, username, payload)
}

func (s *IntakeService) place(ctx context.Context, userID int64, username string, payload order.Payload) (uuid.UUID, error) {
	items := make([]order.Item, 0, len(payload.Items))
	for _, it := range payload.Items {
		p, err := s.products.FindByID(ctx, it.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				// unknown products are dropped, the rest of the order stands
				s.logger.Warn("order references unknown product",
					zap.String("product_id", it.ProductID.String()),
				)
				continue
			}
			return uuid.Nil, err
		}
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		items = append(items, order.Item{
			ProductID: p.ID,
			Title:     p.Title,
			Size:      it.Size,
			Quantity:  qty,
			UnitPrice: p.Price,
		})
	}

	form := order.CheckoutForm{
		FullName: payload.FullName,
		Phone:    payload.Phone,
		Address:  payload.Address,
		Comment:  payload.Comment,
		Telegram: payload.Telegram,
	}
	o, err := order.New(userID, username, form, items)
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.orders.Save(ctx, o); err != nil {
		return uuid.Nil, err
	}

	if s.bus != nil {
		if err := s.bus.Publish(ctx, o.DomainEvents()...); err != nil {
			s.logger.Warn("order event publish failed", zap.Error(err))
		}
	}
	o.ClearDomainEvents()

	s.logger.Info("order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("total", o.TotalPrice.String()),
		zap.Int("items", len(o.Items)),
	)
	return o.ID, nil
}
