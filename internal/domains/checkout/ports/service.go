package ports

import (
	"context"

	cartdomain "github.com/cabinetworks/storefront/internal/domains/cart/domain"
	"github.com/cabinetworks/storefront/internal/domains/checkout/domain"
	ordersdomain "github.com/cabinetworks/storefront/internal/domains/orders/domain"
)

// Notifier delivers the post-purchase emails. Delivery is best effort; a
// confirmed order stands whether or not either message goes out.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, order *ordersdomain.Order) error
	SendAdminAlert(ctx context.Context, order *ordersdomain.Order) error
}

// Service orchestrates the two-phase checkout: open a payment intent, then
// confirm it and persist the order.
type Service interface {
	BeginCheckout(ctx context.Context, identity cartdomain.Identity, req domain.BeginRequest) (*domain.BeginResult, error)
	ConfirmPayment(ctx context.Context, identity cartdomain.Identity, req domain.ConfirmRequest) (*ordersdomain.Order, error)
}
