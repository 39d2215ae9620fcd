// Package checkout drives a cart through order placement. A Checkout owns
// one session's cart, its applied coupon, and the submission state machine.
// It assumes a single caller at a time; the HTTP layer serializes access
// per session.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/ritemedical/storefront-service/internal/cart"
	"github.com/ritemedical/storefront-service/internal/coupon"
	"github.com/ritemedical/storefront-service/internal/metrics"
	"github.com/ritemedical/storefront-service/internal/models"
	"github.com/ritemedical/storefront-service/internal/notify"
	"github.com/ritemedical/storefront-service/internal/orders"
)

var (
	ErrUnauthenticated    = errors.New("user not authenticated")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrSubmissionInFlight = errors.New("order submission already in progress")
)

// Checkout is one session's cart plus submission state machine. All
// collaborators are injected at construction.
type Checkout struct {
	cart        *cart.Cart
	coupons     *coupon.Evaluator
	store       orders.Store
	gateway     notify.Gateway
	deliveryFee float64

	applied *models.Coupon
	state   State
}

// New creates a checkout with an empty cart in the idle state
func New(coupons *coupon.Evaluator, store orders.Store, gateway notify.Gateway, deliveryFee float64) *Checkout {
	return &Checkout{
		cart:        cart.New(),
		coupons:     coupons,
		store:       store,
		gateway:     gateway,
		deliveryFee: deliveryFee,
		state:       idleState(),
	}
}

// Cart returns the session's cart
func (ck *Checkout) Cart() *cart.Cart {
	return ck.cart
}

// State returns the current submission state
func (ck *Checkout) State() State {
	return ck.state
}

// AppliedCoupon returns the coupon currently applied to the cart, if any
func (ck *Checkout) AppliedCoupon() *models.Coupon {
	return ck.applied
}

// ApplyCoupon resolves the code and applies the coupon to the cart. At most
// one coupon is applied at a time; applying a new one replaces the old.
func (ck *Checkout) ApplyCoupon(code string) (*models.Coupon, float64, error) {
	c, err := ck.coupons.Lookup(code)
	if err != nil {
		return nil, 0, err
	}
	discount, err := ck.coupons.Evaluate(c, ck.cart.Subtotal())
	if err != nil {
		return nil, 0, err
	}
	ck.applied = c
	return c, discount, nil
}

// RemoveCoupon drops the applied coupon
func (ck *Checkout) RemoveCoupon() {
	ck.applied = nil
}

// Summary returns the cart with its derived totals. The discount is
// recomputed on every call; a coupon whose minimum is no longer met after
// cart edits contributes nothing.
func (ck *Checkout) Summary() models.CartSummary {
	subtotal := ck.cart.Subtotal()
	summary := models.CartSummary{
		Lines:     ck.cart.Lines(),
		ItemCount: ck.cart.ItemCount(),
		Subtotal:  subtotal,
		Coupon:    ck.applied,
	}
	if ck.applied != nil {
		if discount, err := ck.coupons.Evaluate(ck.applied, subtotal); err == nil {
			summary.Discount = discount
		}
	}
	if !ck.cart.Empty() {
		summary.DeliveryFee = ck.deliveryFee
	}
	summary.Total = subtotal - summary.Discount + summary.DeliveryFee
	return summary
}

// Submit places an order from the current cart.
//
// Guards run before any transition: an anonymous user fails with
// ErrUnauthenticated and an empty cart with ErrEmptyCart; both leave the
// machine in a terminal failed state without ever entering submitting, and
// the cart untouched. On persist success the machine moves to succeeded,
// the cart is cleared as part of that transition, and the three webhook
// notifications fire in the background. On persist failure the cart stays
// as it was so the user can retry.
func (ck *Checkout) Submit(ctx context.Context, user *models.User, method *models.PaymentMethod, address string) (*models.Order, error) {
	if ck.state.Phase == PhaseSubmitting {
		return nil, ErrSubmissionInFlight
	}
	if user == nil {
		ck.state = failedState(ErrUnauthenticated.Error())
		metrics.OrdersTotal.WithLabelValues("unauthenticated").Inc()
		return nil, ErrUnauthenticated
	}
	if ck.cart.Empty() {
		ck.state = failedState(ErrEmptyCart.Error())
		metrics.OrdersTotal.WithLabelValues("empty_cart").Inc()
		return nil, ErrEmptyCart
	}

	ck.state = State{Phase: PhaseSubmitting}

	order := ck.buildOrder(user, method, address)

	if err := ck.store.Create(ctx, order); err != nil {
		ck.state = failedState(err.Error())
		metrics.OrdersTotal.WithLabelValues("failed").Inc()
		log.WithFields(log.Fields{
			"order_id": order.OrderID,
			"user_id":  user.ID,
		}).Error("Failed to place order: ", err)
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Succeeded: clearing the cart is part of this transition, not a
	// side effect of the notification calls below.
	ck.state = succeededState(order.OrderID)
	ck.cart.Clear()
	ck.applied = nil

	metrics.OrdersTotal.WithLabelValues("succeeded").Inc()
	metrics.OrderAmount.Observe(order.TotalAmount)

	log.WithFields(log.Fields{
		"order_id": order.OrderID,
		"user_id":  user.ID,
		"items":    len(order.Items),
		"total":    order.TotalAmount,
	}).Info("Order placed")

	ck.notifyDownstream(order)

	return order, nil
}

// Reset returns a terminal state machine to idle. It is the only way back.
func (ck *Checkout) Reset() {
	ck.state = idleState()
}

func (ck *Checkout) buildOrder(user *models.User, method *models.PaymentMethod, address string) *models.Order {
	subtotal := ck.cart.Subtotal()
	discount := 0.0
	if ck.applied != nil {
		d, err := ck.coupons.Evaluate(ck.applied, subtotal)
		if err != nil {
			// Cart shrank below the coupon minimum since it was applied
			log.WithField("coupon", ck.applied.Code).Warn("Applied coupon no longer eligible, dropping discount")
		} else {
			discount = d
		}
	}

	methodLabel := ""
	if method != nil {
		methodLabel = method.Name
	}

	return &models.Order{
		OrderID:         newOrderID(),
		UserID:          user.ID,
		CustomerName:    user.Name,
		CustomerEmail:   user.Email,
		CustomerPhone:   user.Phone,
		Items:           ck.cart.Snapshot(),
		TotalAmount:     subtotal - discount + ck.deliveryFee,
		Status:          models.OrderStatusConfirmed,
		PaymentMethod:   methodLabel,
		DeliveryAddress: address,
		CreatedAt:       time.Now().UTC(),
	}
}

// notifyDownstream fires the three best-effort webhook calls. They run
// independently, in no particular order, and never touch the submission
// state: the order is placed once persisted, whatever happens here.
func (ck *Checkout) notifyDownstream(order *models.Order) {
	calls := []struct {
		name string
		fn   func(*models.Order) error
	}{
		{"customer notification", ck.gateway.NotifyCustomer},
		{"order processing", ck.gateway.TriggerProcessing},
		{"inventory update", ck.gateway.TriggerInventoryUpdate},
	}
	for _, call := range calls {
		call := call
		go func() {
			if err := call.fn(order); err != nil {
				log.WithFields(log.Fields{
					"order_id": order.OrderID,
					"webhook":  call.name,
				}).Error("Webhook delivery failed: ", err)
				return
			}
			log.WithFields(log.Fields{
				"order_id": order.OrderID,
				"webhook":  call.name,
			}).Debug("Webhook delivered")
		}()
	}
}

// newOrderID generates an order identifier like ORDER_1A2B3C4D
func newOrderID() string {
	return "ORDER_" + strings.ToUpper(uuid.New().String())[:8]
}
