package models

// CartLine represents one product-plus-quantity entry in a cart. Product
// fields are snapshotted when the line is created so the cart does not chase
// later catalog edits.
type CartLine struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

// LineTotal returns unit price times quantity
func (l *CartLine) LineTotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// AddItemRequest represents a request to add one unit of a product to the cart
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// CartSummary aggregates the cart with its derived totals for the API
type CartSummary struct {
	Lines       []CartLine `json:"lines"`
	ItemCount   int        `json:"item_count"`
	Subtotal    float64    `json:"subtotal"`
	Coupon      *Coupon    `json:"coupon,omitempty"`
	Discount    float64    `json:"discount"`
	DeliveryFee float64    `json:"delivery_fee"`
	Total       float64    `json:"total"`
}
