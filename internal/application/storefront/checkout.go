package storefront

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// CheckoutState models the submission lifecycle of one checkout attempt
type CheckoutState string

const (
	CheckoutIdle       CheckoutState = "idle"
	CheckoutValidating CheckoutState = "validating"
	CheckoutSubmitting CheckoutState = "submitting"
	CheckoutSubmitted  CheckoutState = "submitted"
)

// CheckoutFlow validates the order form, assembles the payload from
// the cart and submits it through the sink. Submitted is terminal per
// attempt; Reset starts a new one.
type CheckoutFlow struct {
	sink   OrderSink
	logger *zap.Logger

	mu        sync.Mutex
	state     CheckoutState
	fieldErrs order.FieldErrors
}

// NewCheckoutFlow creates a checkout flow in the Idle state
func NewCheckoutFlow(sink OrderSink, logger *zap.Logger) *CheckoutFlow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutFlow{
		sink:   sink,
		logger: logger,
		state:  CheckoutIdle,
	}
}

// State returns the current checkout state
func (f *CheckoutFlow) State() CheckoutState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// FieldErrors returns the per-field flags from the last validation
func (f *CheckoutFlow) FieldErrors() order.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fieldErrs
}

// Validate runs form validation without submitting
func (f *CheckoutFlow) Validate(form order.CheckoutForm) order.FieldErrors {
	return form.Validate()
}

// Submit runs the full checkout: validate, build the payload, then the
// dual dispatch (host-native send first, backend POST second). Both
// dispatch failures are swallowed; the flow reaches Submitted
// regardless of transport success, since the chat message is a
// best-effort secondary confirmation.
//
// On validation failure the flow returns to Idle with the failing
// fields flagged and nothing is dispatched.
func (f *CheckoutFlow) Submit(ctx context.Context, c *cart.Cart, form order.CheckoutForm) (order.FieldErrors, error) {
	f.mu.Lock()
	if f.state == CheckoutSubmitting || f.state == CheckoutSubmitted {
		f.mu.Unlock()
		return nil, shared.ErrInvalidState
	}
	f.state = CheckoutValidating
	f.mu.Unlock()

	errs := form.Validate()
	f.mu.Lock()
	f.fieldErrs = errs
	if !errs.Valid() {
		f.state = CheckoutIdle
		f.mu.Unlock()
		return errs, nil
	}
	f.state = CheckoutSubmitting
	f.mu.Unlock()

	payload := order.BuildPayload(c, form)

	f.sink.SendNative(ctx, payload)
	if err := f.sink.PostOrder(ctx, payload); err != nil {
		f.logger.Warn("backend order post failed", zap.Error(err))
	}

	f.mu.Lock()
	f.state = CheckoutSubmitted
	f.mu.Unlock()
	return nil, nil
}

// Reset starts a new checkout attempt
func (f *CheckoutFlow) Reset() {
	f.mu.Lock()
	f.state = CheckoutIdle
	f.fieldErrs = nil
	f.mu.Unlock()
}
