// Package coupon holds the static coupon catalog and the discount
// evaluator. Evaluation is pure: same coupon and subtotal always produce
// the same discount.
package coupon

import (
	"fmt"
	"strings"

	"github.com/ritemedical/storefront-service/internal/models"
)

// ErrInvalidCode is returned when a user-entered code matches no active coupon
var ErrInvalidCode = fmt.Errorf("invalid coupon code")

// MinimumNotMetError is returned when the cart subtotal is below the
// coupon's minimum order amount
type MinimumNotMetError struct {
	Minimum float64
}

func (e *MinimumNotMetError) Error() string {
	return fmt.Sprintf("minimum order amount is $%.2f", e.Minimum)
}

// Evaluator resolves coupon codes and computes discounts against a fixed
// coupon catalog.
type Evaluator struct {
	coupons []models.Coupon
}

// NewEvaluator creates an evaluator over the given coupon catalog
func NewEvaluator(coupons []models.Coupon) *Evaluator {
	return &Evaluator{coupons: coupons}
}

// Active returns the selectable coupons, inactive ones filtered out
func (e *Evaluator) Active() []models.Coupon {
	out := make([]models.Coupon, 0, len(e.coupons))
	for _, c := range e.coupons {
		if c.Active {
			out = append(out, c)
		}
	}
	return out
}

// Lookup matches a user-entered code against the active catalog,
// case-insensitively. Surrounding whitespace is ignored.
func (e *Evaluator) Lookup(code string) (*models.Coupon, error) {
	code = strings.TrimSpace(code)
	for i := range e.coupons {
		c := &e.coupons[i]
		if c.Active && strings.EqualFold(c.Code, code) {
			clone := *c
			return &clone, nil
		}
	}
	return nil, ErrInvalidCode
}

// Evaluate maps a coupon and a cart subtotal to a discount amount.
// Percentage discounts are capped at the coupon's MaxDiscount; fixed
// discounts are taken verbatim.
func (e *Evaluator) Evaluate(c *models.Coupon, subtotal float64) (float64, error) {
	if subtotal < c.MinOrderAmount {
		return 0, &MinimumNotMetError{Minimum: c.MinOrderAmount}
	}

	switch c.Kind {
	case models.DiscountPercentage:
		discount := subtotal * c.Discount / 100
		// MaxDiscount of zero means uncapped
		if c.MaxDiscount > 0 && discount > c.MaxDiscount {
			discount = c.MaxDiscount
		}
		return discount, nil
	case models.DiscountFixed:
		return c.Discount, nil
	default:
		return 0, fmt.Errorf("unknown discount kind %q", c.Kind)
	}
}
