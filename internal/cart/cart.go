// Package cart implements the in-memory shopping cart. A cart belongs to a
// single session; callers are expected to serialize access (the HTTP layer
// holds a per-session lock), so the cart itself carries no mutex.
package cart

import (
	"sort"

	"github.com/ritemedical/storefront-service/internal/models"
)

// Cart is a collection of lines keyed by product ID. Quantities never drop
// below 1; a line that would reach 0 is removed instead. Totals are always
// derived from the lines, never cached.
type Cart struct {
	lines map[string]*models.CartLine
}

// New returns an empty cart
func New() *Cart {
	return &Cart{lines: make(map[string]*models.CartLine)}
}

// Add puts one unit of the product into the cart, merging with an existing
// line when the product is already present.
func (c *Cart) Add(p *models.Product) {
	if line, ok := c.lines[p.ID]; ok {
		line.Quantity++
		return
	}
	c.lines[p.ID] = &models.CartLine{
		ProductID:   p.ID,
		ProductName: p.Name,
		UnitPrice:   p.Price,
		Quantity:    1,
	}
}

// DecreaseOne removes one unit of the product. The line disappears when its
// quantity reaches zero. Absent products are a no-op, not an error.
func (c *Cart) DecreaseOne(productID string) {
	line, ok := c.lines[productID]
	if !ok {
		return
	}
	if line.Quantity > 1 {
		line.Quantity--
		return
	}
	c.RemoveLine(productID)
}

// RemoveLine deletes the line for the product regardless of quantity
func (c *Cart) RemoveLine(productID string) {
	delete(c.lines, productID)
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.lines = make(map[string]*models.CartLine)
}

// Empty reports whether the cart has no lines
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Subtotal returns the sum of line totals; 0 for an empty cart
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, line := range c.lines {
		total += line.LineTotal()
	}
	return total
}

// ItemCount returns the sum of quantities across lines (not the line count)
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Lines returns copies of the cart lines sorted by product ID
func (c *Cart) Lines() []models.CartLine {
	out := make([]models.CartLine, 0, len(c.lines))
	for _, line := range c.lines {
		out = append(out, *line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// Snapshot copies the cart lines into immutable order items for persistence
func (c *Cart) Snapshot() []models.OrderItem {
	lines := c.Lines()
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Price:       line.UnitPrice,
		})
	}
	return items
}
