package catalog

import (
	"errors"
	"sort"
	"sync"

	"github.com/ritemedical/storefront-service/internal/metrics"
	"github.com/ritemedical/storefront-service/internal/models"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidThreshold = errors.New("low-stock threshold cannot be negative")
)

// Catalog is the in-memory product catalog. Reads dominate; the only
// mutation is the admin threshold adjustment.
type Catalog struct {
	mutex    sync.RWMutex
	products map[string]*models.Product
}

// New creates a catalog seeded with the given products
func New(products []models.Product) *Catalog {
	c := &Catalog{products: make(map[string]*models.Product, len(products))}
	for i := range products {
		p := products[i]
		c.products[p.ID] = &p
		metrics.InventoryLevel.WithLabelValues(p.ID).Set(float64(p.Stock))
	}
	c.updateLowStockGauge()
	return c
}

// List returns all products sorted by ID
func (c *Catalog) List() []models.Product {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Find returns the product with the given ID
func (c *Catalog) Find(id string) (*models.Product, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	p, ok := c.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

// LowStock returns the products whose stock sits below their individual
// threshold. Out-of-stock products are excluded.
func (c *Catalog) LowStock() []models.Product {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	var out []models.Product
	for _, p := range c.products {
		if p.LowStock() {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UpdateThreshold changes a product's low-stock threshold
func (c *Catalog) UpdateThreshold(id string, threshold int) (*models.Product, error) {
	if threshold < 0 {
		return nil, ErrInvalidThreshold
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	p, ok := c.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	p.LowStockThreshold = threshold
	clone := *p

	c.lowStockGaugeLocked()
	return &clone, nil
}

func (c *Catalog) updateLowStockGauge() {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	c.lowStockGaugeLocked()
}

func (c *Catalog) lowStockGaugeLocked() {
	count := 0
	for _, p := range c.products {
		if p.LowStock() {
			count++
		}
	}
	metrics.LowStockProducts.Set(float64(count))
}
