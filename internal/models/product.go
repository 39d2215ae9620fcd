package models

// Product represents a catalog item
type Product struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description,omitempty"`
	Price             float64 `json:"price"`
	ImageURL          string  `json:"image_url,omitempty"`
	Stock             int     `json:"stock"`
	LowStockThreshold int     `json:"low_stock_threshold"`
}

// InStock reports whether the product can currently be sold
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// LowStock reports whether the product is running low. A product with zero
// stock is out of stock, not low.
func (p *Product) LowStock() bool {
	return p.Stock > 0 && p.Stock < p.LowStockThreshold
}

// UpdateThresholdRequest represents an admin request to change a product's
// low-stock threshold
type UpdateThresholdRequest struct {
	Threshold *int `json:"threshold" binding:"required"`
}
