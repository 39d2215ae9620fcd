package models

// DiscountKind says whether a coupon subtracts a percentage of the subtotal
// or a fixed dollar amount
type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed_amount"
)

// Coupon represents an immutable promotional offer
type Coupon struct {
	ID             string       `json:"id"`
	Code           string       `json:"code"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Discount       float64      `json:"discount"`
	Kind           DiscountKind `json:"kind"`
	MinOrderAmount float64      `json:"min_order_amount"`
	MaxDiscount    float64      `json:"max_discount,omitempty"`
	Active         bool         `json:"active"`
}

// ApplyCouponRequest represents a user-entered coupon code
type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}
