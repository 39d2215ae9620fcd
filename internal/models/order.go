package models

import "time"

// OrderItem is an immutable snapshot of a cart line taken at submission time.
// Later catalog changes never alter a persisted order.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Order represents a placed customer order
type Order struct {
	OrderID         string      `json:"order_id"`
	UserID          string      `json:"user_id"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerPhone   string      `json:"customer_phone"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"total_amount"`
	Status          string      `json:"status"`
	PaymentMethod   string      `json:"payment_method"`
	DeliveryAddress string      `json:"delivery_address"`
	CreatedAt       time.Time   `json:"created_at"`
}

// Order status values as they appear in the order store
const (
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusPending   = "PENDING"
	OrderStatusCancelled = "CANCELLED"
)

// CheckoutRequest represents a request to place an order from the current cart
type CheckoutRequest struct {
	PaymentMethodID string `json:"payment_method_id" binding:"required"`
	DeliveryAddress string `json:"delivery_address"`
}

// CheckoutResponse represents the outcome of an order submission
type CheckoutResponse struct {
	OrderID string  `json:"order_id,omitempty"`
	Status  string  `json:"status"`
	Message string  `json:"message,omitempty"`
	Total   float64 `json:"total,omitempty"`
}
