package orders

import (
	"context"
	"sort"
	"sync"

	"github.com/ritemedical/storefront-service/internal/models"
)

// MemoryStore is a mutex-guarded in-memory order store
type MemoryStore struct {
	mutex  sync.RWMutex
	orders map[string]*models.Order
}

// NewMemoryStore returns an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{orders: make(map[string]*models.Order)}
}

// Create stores the order keyed by its ID
func (s *MemoryStore) Create(_ context.Context, order *models.Order) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	clone := *order
	clone.Items = append([]models.OrderItem(nil), order.Items...)
	s.orders[order.OrderID] = &clone
	return nil
}

// Get returns the order with the given ID
func (s *MemoryStore) Get(_ context.Context, orderID string) (*models.Order, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	order, ok := s.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	clone := *order
	clone.Items = append([]models.OrderItem(nil), order.Items...)
	return &clone, nil
}

// ListByUser returns the user's orders, newest first
func (s *MemoryStore) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var out []models.Order
	for _, order := range s.orders {
		if order.UserID == userID {
			clone := *order
			clone.Items = append([]models.OrderItem(nil), order.Items...)
			out = append(out, clone)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// ListAll returns every order, newest first
func (s *MemoryStore) ListAll(_ context.Context) ([]models.Order, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		clone := *order
		clone.Items = append([]models.OrderItem(nil), order.Items...)
		out = append(out, clone)
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].OrderID > orders[j].OrderID
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
