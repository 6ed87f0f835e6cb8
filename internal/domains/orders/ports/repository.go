package ports

import (
	"context"
	"errors"

	"github.com/cabinetworks/storefront/internal/domains/orders/domain"
)

// ErrNotFound is returned when no order matches the lookup.
var ErrNotFound = errors.New("order not found")

// ErrDuplicateNumber is returned when an order number already exists.
var ErrDuplicateNumber = errors.New("order number already exists")

// Repository persists order aggregates. Create must write the header and all
// line items atomically.
type Repository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByNumber(ctx context.Context, number string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	UpdateFulfillment(ctx context.Context, number string, status domain.FulfillmentStatus, trackingNumber, carrier string) error
}
