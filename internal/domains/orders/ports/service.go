package ports

import (
	"context"

	"github.com/cabinetworks/storefront/internal/domains/orders/domain"
)

// ShippingNotifier sends the customer a shipping confirmation once an order
// is marked shipped. Implementations must not block fulfillment on failure.
type ShippingNotifier interface {
	SendShippingConfirmation(ctx context.Context, order *domain.Order) error
}

// Service exposes order lookup and the admin fulfillment operations.
type Service interface {
	GetOrder(ctx context.Context, number string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	AdvanceFulfillment(ctx context.Context, number string, next domain.FulfillmentStatus, trackingNumber, carrier string) (*domain.Order, error)
}
