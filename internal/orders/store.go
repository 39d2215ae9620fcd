package orders

import (
	"context"
	"errors"

	"github.com/ritemedical/storefront-service/internal/models"
)

// ErrOrderNotFound is returned when the requested order does not exist
var ErrOrderNotFound = errors.New("order not found")

// Store persists placed orders. A successful Create is the durability
// point checkout relies on: once it returns nil the order counts as placed.
type Store interface {
	Create(ctx context.Context, order *models.Order) error
	Get(ctx context.Context, orderID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
}
