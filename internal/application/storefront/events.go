package storefront

import (
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// EventStateChanged is published after every mutating session operation;
// the UI layer subscribes and re-renders its read models.
const EventStateChanged = "storefront.state_changed"

// Causes carried by StateChangedEvent
const (
	CauseTab       = "tab"
	CauseCategory  = "category"
	CauseSort      = "sort"
	CauseFavorites = "favorites"
	CauseCart      = "cart"
	CauseProducts  = "products"
)

// StateChangedEvent signals that session state changed and names what moved
type StateChangedEvent struct {
	shared.BaseDomainEvent
	Cause string `json:"cause"`
}

// NewStateChangedEvent creates a StateChangedEvent for a session
func NewStateChangedEvent(sessionID uuid.UUID, cause string) *StateChangedEvent {
	return &StateChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventStateChanged, "Session", sessionID),
		Cause:           cause,
	}
}
